package commands

import (
	"context"
	"errors"
	"fmt"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/services"
	"eatify/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ArchiveOrderCommandHandler folds a terminal order into history. It is idempotent: history
// rows are insert-or-ignore and an archived order is left alone.
type ArchiveOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      ports.Clock
	archiver   services.Archiver
}

func NewArchiveOrderCommandHandler(uowFactory UoWFactory, clock ports.Clock) ArchiveOrderCommandHandler {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return ArchiveOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		archiver:   services.NewArchiver(),
	}
}

func (h ArchiveOrderCommandHandler) Handle(ctx context.Context, cmd ArchiveOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.archive(ctx, cmd.OrderID())
}

func (h ArchiveOrderCommandHandler) archive(ctx context.Context, id kernel.OrderID) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "order.archive")
	span.SetAttributes(attribute.String("order.id", id.String()))
	defer span.End()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if o.IsArchived() {
		return nil
	}

	now := h.clock.Now().UTC()
	entries, err := h.archiver.Fold(o, now)
	if err != nil {
		return err
	}

	historyRepo := uow.HistoryRepository()
	for _, entry := range entries {
		if _, err = historyRepo.Append(ctx, entry); err != nil {
			return fmt.Errorf("append %s history of %s: %w", entry.OwnerRole(), id, err)
		}
	}

	if err = removeProjections(ctx, uow.ProjectionRepository(), id); err != nil {
		return err
	}

	expected := o.Status()
	if err = o.MarkArchived(now); err != nil {
		return err
	}

	// A terminal order only changes by being archived, so losing the race means
	// another archiver already finished the job.
	if err = orderRepo.Update(ctx, o, expected); err != nil {
		if errors.Is(err, order.ErrConcurrentModification) {
			return nil
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		if errors.Is(err, order.ErrConcurrentModification) {
			return nil
		}
		return err
	}
	return nil
}
