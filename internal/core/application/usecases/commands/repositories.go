package commands

import (
	"context"

	"eatify/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ProjectionRepoFactory interface {
		ProjectionRepository() ports.ProjectionRepository
	}

	HistoryRepoFactory interface {
		HistoryRepository() ports.HistoryRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// UoW is what a lifecycle transition needs inside one transaction.
	UoW interface {
		TxManager
		OrderRepoFactory
		ProjectionRepoFactory
		HistoryRepoFactory
		OutboxRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// TransitionObserver receives the outcome of every lifecycle operation.
type TransitionObserver interface {
	ObserveTransition(event string, err error)
	ObserveCodeValidation(err error)
}

type noopObserver struct{}

func (noopObserver) ObserveTransition(string, error) {}
func (noopObserver) ObserveCodeValidation(error)     {}
