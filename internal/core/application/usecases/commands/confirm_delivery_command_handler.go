package commands

import (
	"context"
	"time"

	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/ports"
	"eatify/internal/pkg/errs"
)

// ConfirmDeliveryCommandHandler completes the handoff. The order state is checked first,
// then the code is consumed, then the guarded update runs, so a code gates at most one
// confirm. Archival follows in its own unit of work.
type ConfirmDeliveryCommandHandler struct {
	lifecycle Lifecycle
	codes     ports.CodeStore
	archiver  ArchiveOrderCommandHandler
}

func NewConfirmDeliveryCommandHandler(
	lifecycle Lifecycle,
	codes ports.CodeStore,
	archiver ArchiveOrderCommandHandler,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{lifecycle: lifecycle, codes: codes, archiver: archiver}
}

func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	// Read outside any transaction, the guarded update below settles races.
	current, err := h.lifecycle.uowFactory.Create().OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = current.Authorize(cmd.Actor(), order.Confirm); err != nil {
		return err
	}
	if _, err = current.Status().Apply(order.Confirm); err != nil {
		return err
	}

	err = h.codes.Consume(ctx, cmd.OrderID(), cmd.Code(), h.lifecycle.now())
	h.lifecycle.observer.ObserveCodeValidation(err)
	if err != nil {
		return err
	}

	o, err := h.lifecycle.run(ctx, cmd.Actor(), cmd.OrderID(), order.Confirm,
		func(o *order.Order, now time.Time) error {
			return o.ConfirmDelivery(now)
		}, nil)
	if err != nil {
		return err
	}

	if err = h.archiver.archive(ctx, o.ID()); err != nil {
		return errs.NewPartiallyAppliedError("archive", o.ID().String(), err)
	}
	return nil
}
