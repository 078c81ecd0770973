package memory

import (
	"context"
	"sort"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/outbox"
	"eatify/internal/core/ports"
)

var _ ports.OutboxRepository = &OutboxRepository{}

type OutboxRepository struct {
	uow *UnitOfWork
}

func (r *OutboxRepository) Add(_ context.Context, msg outbox.Message) error {
	return r.uow.write(func(s *state) error {
		s.outbox[msg.ID] = msg
		return nil
	})
}

func (r *OutboxRepository) Pending(_ context.Context, now time.Time, limit int) ([]outbox.Message, error) {
	var due []outbox.Message
	r.uow.store.read(func(s *state) {
		for _, msg := range s.outbox {
			if !msg.NextRetryAt.After(now) && !msg.IsExhausted() {
				due = append(due, msg)
			}
		}
	})

	sort.Slice(due, func(i, j int) bool {
		return due[i].NextRetryAt.Before(due[j].NextRetryAt)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (r *OutboxRepository) Delete(_ context.Context, id kernel.UUID) error {
	return r.uow.write(func(s *state) error {
		delete(s.outbox, id)
		return nil
	})
}

func (r *OutboxRepository) SaveRetry(_ context.Context, msg outbox.Message) error {
	return r.uow.write(func(s *state) error {
		if _, ok := s.outbox[msg.ID]; ok {
			s.outbox[msg.ID] = msg
		}
		return nil
	})
}
