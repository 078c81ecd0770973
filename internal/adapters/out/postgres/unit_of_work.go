// Package postgres provides the GORM-based storage driver and its Unit of Work.
// A unit of work spans every repository touched by one lifecycle operation: the guarded
// order update, the projection writes, history rows and the outbox message either all
// commit together or none of them do.
//
// Usage Patterns:
//
// Lifecycle Transition:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	o, err := uow.OrderRepository().Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	expected := o.Status()
//	if err := o.Accept(now); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Update(ctx, o, expected); err != nil {
//	    return err // wraps order.ErrConcurrentModification when another writer won
//	}
//	if err := uow.ProjectionRepository().SaveRestaurant(ctx, view); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns at most one transaction; goroutines use separate instances
//   - The guarded update relies on the row lock taken by UPDATE: a second writer blocks, then
//     re-evaluates its WHERE clause against the committed row and matches nothing
//   - Repositories obtained without Begin autocommit every statement
package postgres

import (
	"context"

	"eatify/internal/adapters/out/postgres/historyrepo"
	"eatify/internal/adapters/out/postgres/orderrepo"
	"eatify/internal/adapters/out/postgres/outboxrepo"
	"eatify/internal/adapters/out/postgres/projectionrepo"
	"eatify/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.UnitOfWork = &GormUnitOfWork{}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM connection pool.
// Each business operation gets a fresh unit of work isolated from concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := postgres.Open(dsn)
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with no transaction started.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the order, projection,
// history and outbox repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit, the transaction is closed and cannot be reused.
//
// Returns gorm.ErrInvalidTransaction if no active transaction exists.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Calling it after Commit returns gorm.ErrInvalidTransaction, which deferred callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides the canonical order store within the unit of work.
// Operations run in the current transaction if one is active, otherwise they autocommit.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// ProjectionRepository provides the per-actor projection writer within the unit of work.
func (uow *GormUnitOfWork) ProjectionRepository() ports.ProjectionRepository {
	return projectionrepo.NewGormProjectionRepository(uow.conn())
}

func (uow *GormUnitOfWork) HistoryRepository() ports.HistoryRepository {
	return historyrepo.NewGormHistoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
