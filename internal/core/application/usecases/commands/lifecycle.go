package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/model/outbox"
	"eatify/internal/core/domain/model/projection"
	"eatify/internal/core/ports"
	"eatify/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "eatify/commands"

// Lifecycle is the only writer allowed to touch more than one projection per transition.
// Each run is one unit of work: guarded update, projection writes in fixed order, outbox.
type Lifecycle struct {
	uowFactory UoWFactory
	clock      ports.Clock
	observer   TransitionObserver
}

func NewLifecycle(uowFactory UoWFactory, clock ports.Clock, observer TransitionObserver) Lifecycle {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if observer == nil {
		observer = noopObserver{}
	}
	return Lifecycle{uowFactory: uowFactory, clock: clock, observer: observer}
}

func (l Lifecycle) now() time.Time {
	return l.clock.Now().UTC()
}

// mutation applies the event to the loaded aggregate.
type mutation func(o *order.Order, now time.Time) error

// beforeCommit runs inside the transaction after all writes.
type beforeCommit func(ctx context.Context, o *order.Order, now time.Time) error

func (l Lifecycle) run(
	ctx context.Context,
	actor kernel.Actor,
	id kernel.OrderID,
	event order.Event,
	mutate mutation,
	hook beforeCommit,
) (_ *order.Order, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "order."+event.String())
	span.SetAttributes(
		attribute.String("order.id", id.String()),
		attribute.String("actor.role", string(actor.Role())),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		l.observer.ObserveTransition(event.String(), err)
	}()

	uow := l.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = o.Authorize(actor, event); err != nil {
		return nil, err
	}

	now := l.now()
	expected := o.Status()
	if err = mutate(o, now); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return nil, lostRace(expected, event, err)
	}

	if err = syncProjections(ctx, uow.ProjectionRepository(), o); err != nil {
		return nil, err
	}

	if err = appendEvent(ctx, uow.OutboxRepository(), event.RoutingKey(), o, actor, now); err != nil {
		return nil, err
	}

	if hook != nil {
		if err = hook(ctx, o, now); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, lostRace(expected, event, err)
	}

	return o, nil
}

// lostRace turns a failed guarded update into the transition error the loser must see.
func lostRace(expected order.Status, event order.Event, err error) error {
	if errors.Is(err, order.ErrConcurrentModification) {
		return errs.NewInvalidTransitionErrorWithCause(expected.String(), event.String(), err)
	}
	return err
}

// syncProjections makes the stored projections equal to projection.Derive(o), writing
// restaurant, customer, delivery-candidate, delivery-assigned in that order.
func syncProjections(ctx context.Context, repo ports.ProjectionRepository, o *order.Order) error {
	set := projection.Derive(o)

	for _, kind := range projection.Kinds() {
		var err error
		switch {
		case !set.Has(kind):
			err = repo.Remove(ctx, kind, o.ID())
		case kind == projection.Restaurant:
			err = repo.SaveRestaurant(ctx, *set.Restaurant)
		case kind == projection.Customer:
			err = repo.SaveCustomer(ctx, *set.Customer)
		case kind == projection.DeliveryCandidate:
			err = repo.SaveDeliveryCandidate(ctx, *set.DeliveryCandidate)
		case kind == projection.DeliveryAssigned:
			err = repo.SaveDeliveryAssigned(ctx, *set.DeliveryAssigned)
		}
		if err != nil {
			return fmt.Errorf("sync %s projection of %s: %w", kind, o.ID(), err)
		}
	}
	return nil
}

func removeProjections(ctx context.Context, repo ports.ProjectionRepository, id kernel.OrderID) error {
	for _, kind := range projection.Kinds() {
		if err := repo.Remove(ctx, kind, id); err != nil {
			return fmt.Errorf("remove %s projection of %s: %w", kind, id, err)
		}
	}
	return nil
}

func appendEvent(
	ctx context.Context,
	repo ports.OutboxRepository,
	routingKey string,
	o *order.Order,
	actor kernel.Actor,
	now time.Time,
) error {
	msg, err := outbox.NewLifecycleMessage(routingKey, o, actor, now)
	if err != nil {
		return err
	}
	return repo.Add(ctx, msg)
}
