package commands

import (
	"context"
	"time"

	"eatify/internal/core/domain/model/order"
	"eatify/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels a PLACED or ACCEPTED order, removes its projections in
// the same unit of work and then archives it without history.
type CancelOrderCommandHandler struct {
	lifecycle Lifecycle
	archiver  ArchiveOrderCommandHandler
}

func NewCancelOrderCommandHandler(lifecycle Lifecycle, archiver ArchiveOrderCommandHandler) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{lifecycle: lifecycle, archiver: archiver}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	o, err := h.lifecycle.run(ctx, cmd.Actor(), cmd.OrderID(), order.Cancel,
		func(o *order.Order, now time.Time) error {
			return o.Cancel(cmd.Reason(), now)
		}, nil)
	if err != nil {
		return err
	}

	if err = h.archiver.archive(ctx, o.ID()); err != nil {
		return errs.NewPartiallyAppliedError("archive", o.ID().String(), err)
	}
	return nil
}
