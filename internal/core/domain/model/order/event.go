package order

// Event is an actor-triggered lifecycle input.
type Event string

const (
	Accept      Event = "accept"
	Assign      Event = "assign"
	IssueCode   Event = "issue_code"
	ReissueCode Event = "reissue_code"
	Confirm     Event = "confirm"
	Cancel      Event = "cancel"
)

func (e Event) String() string {
	return string(e)
}

// RoutingKey names the outbox message published after e commits.
func (e Event) RoutingKey() string {
	switch e {
	case Accept:
		return "order.accepted"
	case Assign:
		return "order.assigned"
	case IssueCode:
		return "order.code_issued"
	case ReissueCode:
		return "order.code_reissued"
	case Confirm:
		return "order.delivered"
	case Cancel:
		return "order.cancelled"
	default:
		return "order." + string(e)
	}
}

// PlacedRoutingKey is published when an order is created.
const PlacedRoutingKey = "order.placed"
