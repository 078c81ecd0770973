package order

import (
	"errors"
	"strings"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrConcurrentModification is returned by repositories when the guarded update finds
	// the stored state or version moved on since the order was loaded.
	ErrConcurrentModification = errors.New("order was modified concurrently")
)

// Order is the canonical record of one logical order and the aggregate root of the
// lifecycle. Projections are derived from it and never written independently.
//
// Invariants:
//   - id, customer, restaurant, line items and billing are fixed at creation
//   - the delivery partner is set exactly once, by the assign event
//   - status only moves along the transition table in status.go
//   - version grows by one with every persisted change and drives the guarded update
type Order struct {
	id           kernel.OrderID
	customer     kernel.Party
	restaurant   kernel.Party
	partner      *kernel.Party
	lineItems    []LineItem
	billing      Billing
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
	version      int64
	codeReissues int
	cancelReason string
	archivedAt   *time.Time

	isConstructed bool
}

// NewOrder creates an order in PLACED state. All validation failures are joined.
func NewOrder(
	id kernel.OrderID,
	customer kernel.Party,
	restaurant kernel.Party,
	lineItems []LineItem,
	billing Billing,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Placed,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setParty("customer", &o.customer, customer),
		o.setParty("restaurant", &o.restaurant, restaurant),
		o.setLineItems(lineItems),
		o.setBilling(billing),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// PreviousVersion is the version the stored row must still carry for the guarded update
// of the pending change to apply.
func (o *Order) PreviousVersion() int64 {
	return o.version - 1
}

// Snapshot is the flat persisted form of an Order.
type Snapshot struct {
	ID           kernel.OrderID
	Customer     kernel.Party
	Restaurant   kernel.Party
	Partner      *kernel.Party
	LineItems    []LineItem
	Billing      Billing
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int64
	CodeReissues int
	CancelReason string
	ArchivedAt   *time.Time
}

// RestoreOrder rebuilds an order loaded from storage.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		partner:       s.Partner,
		status:        s.Status,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		version:       s.Version,
		codeReissues:  s.CodeReissues,
		cancelReason:  s.CancelReason,
		archivedAt:    s.ArchivedAt,
		isConstructed: true,
	}

	var versionErr error
	if s.Version < 1 {
		versionErr = errs.NewVersionIsInvalidErrorWithCause("version")
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setParty("customer", &o.customer, s.Customer),
		o.setParty("restaurant", &o.restaurant, s.Restaurant),
		o.setLineItems(s.LineItems),
		o.setBilling(s.Billing),
		s.Status.Validate(),
		versionErr,
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot exports the order for persistence.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:           o.id,
		Customer:     o.customer,
		Restaurant:   o.restaurant,
		Partner:      o.Partner(),
		LineItems:    o.LineItems(),
		Billing:      o.billing,
		Status:       o.status,
		CreatedAt:    o.createdAt,
		UpdatedAt:    o.updatedAt,
		Version:      o.version,
		CodeReissues: o.codeReissues,
		CancelReason: o.cancelReason,
		ArchivedAt:   o.archivedAt,
	}
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.OrderID         { return o.id }
func (o *Order) Customer() kernel.Party     { return o.customer }
func (o *Order) Restaurant() kernel.Party   { return o.restaurant }
func (o *Order) Billing() Billing           { return o.billing }
func (o *Order) Status() Status             { return o.status }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) UpdatedAt() time.Time       { return o.updatedAt }
func (o *Order) Version() int64             { return o.version }
func (o *Order) CodeReissues() int          { return o.codeReissues }
func (o *Order) CancelReason() string       { return o.cancelReason }
func (o *Order) IsTerminal() bool           { return o.status.IsTerminal() }
func (o *Order) IsArchived() bool           { return o.archivedAt != nil }
func (o *Order) ArchivedAt() *time.Time     { return copyTime(o.archivedAt) }

// Partner returns the assigned delivery partner, nil before assign.
func (o *Order) Partner() *kernel.Party {
	if o.partner == nil {
		return nil
	}
	p := *o.partner
	return &p
}

func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// Accept moves PLACED to ACCEPTED.
func (o *Order) Accept(now time.Time) error {
	return o.apply(Accept, now)
}

// AssignPartner records the delivery partner claiming the order. The partner must be
// reachable by phone since the customer view exposes the contact.
func (o *Order) AssignPartner(partner kernel.Party, now time.Time) error {
	if partner.IsZero() {
		return errs.NewValueIsRequiredError("deliveryPartner")
	}
	if err := partner.RequirePhone("deliveryPartner.phone"); err != nil {
		return err
	}
	if err := o.apply(Assign, now); err != nil {
		return err
	}
	o.partner = &partner
	return nil
}

func (o *Order) IssueCode(now time.Time) error {
	return o.apply(IssueCode, now)
}

// ReissueCode is the audited replacement of a live code.
func (o *Order) ReissueCode(now time.Time) error {
	if err := o.apply(ReissueCode, now); err != nil {
		return err
	}
	o.codeReissues++
	return nil
}

func (o *Order) ConfirmDelivery(now time.Time) error {
	return o.apply(Confirm, now)
}

func (o *Order) Cancel(reason string, now time.Time) error {
	if err := o.apply(Cancel, now); err != nil {
		return err
	}
	o.cancelReason = strings.TrimSpace(reason)
	return nil
}

// MarkArchived stamps a terminal order as folded into history. Calling it twice keeps
// the first timestamp.
func (o *Order) MarkArchived(now time.Time) error {
	if !o.IsTerminal() {
		return errs.NewInvalidTransitionError(o.status.String(), "archive")
	}
	if o.archivedAt == nil {
		at := now.UTC()
		o.archivedAt = &at
		o.version++
	}
	return nil
}

func (o *Order) apply(e Event, now time.Time) error {
	next, err := o.status.Apply(e)
	if err != nil {
		return err
	}
	o.status = next
	o.updatedAt = now.UTC()
	o.version++
	return nil
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParty(param string, dst *kernel.Party, p kernel.Party) error {
	if p.IsZero() {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = p
	return nil
}

func (o *Order) setLineItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}
	for _, item := range items {
		if item.name == "" {
			return errs.NewValueIsInvalidError("lineItems")
		}
	}
	o.lineItems = make([]LineItem, len(items))
	copy(o.lineItems, items)
	return nil
}

func (o *Order) setBilling(b Billing) error {
	if b.paymentMethod == "" {
		return errs.NewValueIsRequiredError("billing")
	}
	o.billing = b
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
