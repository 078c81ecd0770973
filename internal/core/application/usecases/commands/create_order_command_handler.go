package commands

import (
	"context"

	"eatify/internal/core/domain/model/order"
	"eatify/internal/pkg/errs"
)

// CreateOrderCommandHandler writes the order row, the restaurant projection and the
// customer projection in one unit of work.
type CreateOrderCommandHandler struct {
	lifecycle Lifecycle
}

func NewCreateOrderCommandHandler(lifecycle Lifecycle) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{lifecycle: lifecycle}
}

// Handle fails with *errs.ObjectAlreadyExistsError when the id is already known as an
// order or as any projection.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (err error) {
	defer func() { h.lifecycle.observer.ObserveTransition("create", err) }()

	if err = cmd.Validate(); err != nil {
		return err
	}

	now := h.lifecycle.now()
	o, err := order.NewOrder(cmd.OrderID(), cmd.Customer(), cmd.Restaurant(), cmd.LineItems(), cmd.Billing(), now)
	if err != nil {
		return err
	}

	uow := h.lifecycle.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	projections := uow.ProjectionRepository()
	presence, err := projections.Presence(ctx, o.ID())
	if err != nil {
		return err
	}
	if !presence.IsEmpty() {
		return errs.NewObjectAlreadyExistsError("orderId", o.ID().String())
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err = syncProjections(ctx, projections, o); err != nil {
		return err
	}

	if err = appendEvent(ctx, uow.OutboxRepository(), order.PlacedRoutingKey, o, cmd.Actor(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
