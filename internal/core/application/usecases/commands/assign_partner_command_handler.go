package commands

import (
	"context"
	"time"

	"eatify/internal/core/domain/model/order"
)

// AssignPartnerCommandHandler retires the candidate entry and creates the partner's
// assigned entry. Of two concurrent claims exactly one wins the guarded update.
type AssignPartnerCommandHandler struct {
	lifecycle Lifecycle
}

func NewAssignPartnerCommandHandler(lifecycle Lifecycle) AssignPartnerCommandHandler {
	return AssignPartnerCommandHandler{lifecycle: lifecycle}
}

func (h AssignPartnerCommandHandler) Handle(ctx context.Context, cmd AssignPartnerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.lifecycle.run(ctx, cmd.Actor(), cmd.OrderID(), order.Assign,
		func(o *order.Order, now time.Time) error {
			return o.AssignPartner(cmd.Partner(), now)
		}, nil)
	return err
}
