package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork groups repository calls into one transaction. Repositories obtained
// before Begin, or after Commit/Rollback, run outside any transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository

	ProjectionRepository() ProjectionRepository

	HistoryRepository() HistoryRepository

	OutboxRepository() OutboxRepository
}
