package memory

import (
	"context"
	"errors"
	"sync"

	"eatify/internal/core/ports"
)

var (
	ErrTransactionAlreadyStarted = errors.New("transaction already started")
	ErrNoActiveTransaction       = errors.New("no active transaction")
)

var _ ports.UnitOfWork = &UnitOfWork{}

// UnitOfWork buffers writes between Begin and Commit. Without Begin every write is applied
// at once. Reads always see committed state.
type UnitOfWork struct {
	store *Store

	mu     sync.Mutex
	active bool
	ops    []op
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.active {
		return ErrTransactionAlreadyStarted
	}
	u.active = true
	u.ops = nil
	return nil
}

// Commit applies the buffered writes atomically. A failing write, such as a lost guarded
// update, discards the whole unit.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.active {
		return ErrNoActiveTransaction
	}
	ops := u.ops
	u.active = false
	u.ops = nil
	return u.store.apply(ops...)
}

// Rollback drops the buffered writes. It is a no-op after Commit.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.active = false
	u.ops = nil
	return nil
}

func (u *UnitOfWork) write(fn op) error {
	u.mu.Lock()
	if u.active {
		u.ops = append(u.ops, fn)
		u.mu.Unlock()
		return nil
	}
	u.mu.Unlock()
	return u.store.apply(fn)
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: u}
}

func (u *UnitOfWork) ProjectionRepository() ports.ProjectionRepository {
	return &ProjectionRepository{uow: u}
}

func (u *UnitOfWork) HistoryRepository() ports.HistoryRepository {
	return &HistoryRepository{uow: u}
}

func (u *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return &OutboxRepository{uow: u}
}

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return NewUnitOfWork(f.store)
}
