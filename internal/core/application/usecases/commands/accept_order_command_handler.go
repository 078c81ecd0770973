package commands

import (
	"context"
	"time"

	"eatify/internal/core/domain/model/order"
)

// AcceptOrderCommandHandler moves a PLACED order to ACCEPTED and puts it in the
// delivery candidate queue.
type AcceptOrderCommandHandler struct {
	lifecycle Lifecycle
}

func NewAcceptOrderCommandHandler(lifecycle Lifecycle) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{lifecycle: lifecycle}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := h.lifecycle.run(ctx, cmd.Actor(), cmd.OrderID(), order.Accept,
		func(o *order.Order, now time.Time) error {
			return o.Accept(now)
		}, nil)
	return err
}
