package order

import (
	"fmt"

	"eatify/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	PLACED ──accept──> ACCEPTED ──assign──> DELIVERY_ASSIGNED ──issue_code──> CODE_ISSUED ──confirm──> DELIVERED
//	   │                  │                                                    │    ^
//	   └──────cancel──────┴──> CANCELLED                                       └────┘ reissue_code
//
// DELIVERED and CANCELLED are terminal.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Placed
	Accepted
	DeliveryAssigned
	CodeIssued
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Placed:           "PLACED",
		Accepted:         "ACCEPTED",
		DeliveryAssigned: "DELIVERY_ASSIGNED",
		CodeIssued:       "CODE_ISSUED",
		Delivered:        "DELIVERED",
		Cancelled:        "CANCELLED",
	}
}

// transitions is the whole state machine: from -> event -> to.
func getTransitions() map[Status]map[Event]Status {
	//nolint:exhaustive // terminal and unknown states have no outgoing events
	return map[Status]map[Event]Status{
		Placed:           {Accept: Accepted, Cancel: Cancelled},
		Accepted:         {Assign: DeliveryAssigned, Cancel: Cancelled},
		DeliveryAssigned: {IssueCode: CodeIssued},
		CodeIssued:       {ReissueCode: CodeIssued, Confirm: Delivered},
	}
}

// getEventTargets maps events to the state they lead to, for replay detection.
// ReissueCode is absent because it loops on CODE_ISSUED.
func getEventTargets() map[Event]Status {
	return map[Event]Status{
		Accept:    Accepted,
		Assign:    DeliveryAssigned,
		IssueCode: CodeIssued,
		Confirm:   Delivered,
		Cancel:    Cancelled,
	}
}

func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

func ParseStatus(raw string) (Status, error) {
	for s, str := range getStatusStrings() {
		if s != Unknown && str == raw {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", raw))
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanApply reports whether e is legal from s.
func (s Status) CanApply(e Event) bool {
	_, ok := getTransitions()[s][e]
	return ok
}

// Apply returns the state e leads to from s.
//
// An illegal event yields an *errs.InvalidTransitionError; when s already equals the
// event's target the error is flagged AlreadyApplied so callers can treat the replay as a no-op.
func (s Status) Apply(e Event) (Status, error) {
	if next, ok := getTransitions()[s][e]; ok {
		return next, nil
	}

	if target, ok := getEventTargets()[e]; ok && target == s {
		return Unknown, errs.NewAlreadyAppliedError(s.String(), e.String())
	}

	return Unknown, errs.NewInvalidTransitionError(s.String(), e.String())
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Placed, Accepted, DeliveryAssigned, CodeIssued, Delivered, Cancelled}
}

// ActiveStatuses lists the non-terminal statuses.
func ActiveStatuses() []Status {
	return []Status{Placed, Accepted, DeliveryAssigned, CodeIssued}
}
