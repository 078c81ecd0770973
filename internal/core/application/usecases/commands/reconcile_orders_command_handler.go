package commands

import (
	"context"
	"errors"
	"fmt"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/pkg/errs"
)

// ReconcileOrdersCommandHandler finishes interrupted archivals and makes the stored
// projections match the presence table again. Running it twice changes nothing.
type ReconcileOrdersCommandHandler struct {
	uowFactory UoWFactory
	archiver   ArchiveOrderCommandHandler
}

func NewReconcileOrdersCommandHandler(
	uowFactory UoWFactory,
	archiver ArchiveOrderCommandHandler,
) ReconcileOrdersCommandHandler {
	return ReconcileOrdersCommandHandler{uowFactory: uowFactory, archiver: archiver}
}

// Handle keeps going after a per-order failure and returns all failures joined.
func (h ReconcileOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd ReconcileOrdersCommand,
) (ReconcileReport, error) {
	var report ReconcileReport
	if err := cmd.Validate(); err != nil {
		return report, err
	}

	reader := h.uowFactory.Create()

	unarchived, err := reader.OrderRepository().ListTerminalUnarchived(ctx, cmd.Limit())
	if err != nil {
		return report, err
	}

	var failures []error
	for _, id := range unarchived {
		if err = h.archiver.archive(ctx, id); err != nil {
			failures = append(failures, fmt.Errorf("archive %s: %w", id, err))
			continue
		}
		report.Archived++
	}

	ids, err := h.candidates(ctx, reader, cmd.Limit())
	if err != nil {
		return report, errors.Join(append(failures, err)...)
	}

	for _, id := range ids {
		repaired, orphans, repairErr := h.repair(ctx, id)
		if repairErr != nil {
			failures = append(failures, fmt.Errorf("repair %s: %w", id, repairErr))
			continue
		}
		if repaired {
			report.Repaired++
		}
		report.OrphansRemoved += orphans
	}

	return report, errors.Join(failures...)
}

// candidates unions the ids found in projections with the ids of active orders.
func (h ReconcileOrdersCommandHandler) candidates(ctx context.Context, reader UoW, limit int) ([]kernel.OrderID, error) {
	projected, err := reader.ProjectionRepository().ListOrderIDs(ctx, limit)
	if err != nil {
		return nil, err
	}
	active, err := reader.OrderRepository().ListActiveIDs(ctx, limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[kernel.OrderID]struct{}, len(projected)+len(active))
	ids := make([]kernel.OrderID, 0, len(projected)+len(active))
	for _, id := range append(projected, active...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h ReconcileOrdersCommandHandler) repair(ctx context.Context, id kernel.OrderID) (repaired bool, orphans int, err error) {
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Presence is read before the order so a create committing in between cannot leave
	// its projections looking orphaned.
	projections := uow.ProjectionRepository()
	presence, err := projections.Presence(ctx, id)
	if err != nil {
		return false, 0, err
	}

	o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		present := presence.Present()
		for _, kind := range present {
			if err = projections.Remove(ctx, kind, id); err != nil {
				return false, 0, err
			}
		}
		return false, len(present), uow.Commit(ctx)
	case err != nil:
		return false, 0, err
	}

	// Terminal orders waiting for archival are left to the archiver.
	if o.IsTerminal() && !o.IsArchived() {
		return false, 0, nil
	}

	missing, extra := presence.Diff(o.Status())
	if len(missing) == 0 && len(extra) == 0 {
		return false, 0, nil
	}

	if err = syncProjections(ctx, projections, o); err != nil {
		return false, 0, err
	}

	// A transition that committed after the read wrote its own projections; the repair
	// built from the older state is dropped.
	if err = uow.Commit(ctx); errors.Is(err, order.ErrConcurrentModification) {
		return false, 0, nil
	} else if err != nil {
		return false, 0, err
	}
	return true, 0, nil
}
