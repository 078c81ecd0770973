package memory

import (
	"context"
	"sort"
	"strings"

	"eatify/internal/core/domain/model/history"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/ports"
)

var _ ports.HistoryRepository = &HistoryRepository{}

type HistoryRepository struct {
	uow *UnitOfWork
}

// NewHistoryReader returns a repository outside any unit of work, for the read side.
func NewHistoryReader(store *Store) *HistoryRepository {
	return &HistoryRepository{uow: NewUnitOfWork(store)}
}

// Append reports inserted=true when buffered inside a unit of work; the duplicate check
// runs again at commit and silently keeps the first entry.
func (r *HistoryRepository) Append(_ context.Context, entry history.PreviousOrder) (bool, error) {
	key := historyKey{
		role:    entry.OwnerRole(),
		email:   strings.ToLower(entry.OwnerEmail()),
		orderID: entry.OrderID(),
	}

	inserted := true
	err := r.uow.write(func(s *state) error {
		if _, ok := s.history[key]; ok {
			inserted = false
			return nil
		}
		s.history[key] = entry
		return nil
	})
	return inserted, err
}

// ListByOwner returns the newest entries first.
func (r *HistoryRepository) ListByOwner(_ context.Context, role kernel.Role, email string) ([]history.PreviousOrder, error) {
	email = strings.ToLower(email)
	entries := make([]history.PreviousOrder, 0)
	r.uow.store.read(func(s *state) {
		for key, entry := range s.history {
			if key.role == role && key.email == email {
				entries = append(entries, entry)
			}
		}
	})

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ArchivedAt().After(entries[j].ArchivedAt())
	})
	return entries, nil
}
