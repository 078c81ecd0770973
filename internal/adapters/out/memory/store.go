// Package memory is the in-process storage driver. It keeps the same contracts as the
// postgres driver: guarded updates, insert-or-ignore history and all-or-nothing units of work.
package memory

import (
	"maps"
	"sync"

	"eatify/internal/core/domain/model/history"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/model/outbox"
	"eatify/internal/core/domain/model/projection"
)

type historyKey struct {
	role    kernel.Role
	email   string
	orderID kernel.OrderID
}

type state struct {
	orders      map[kernel.OrderID]order.Snapshot
	restaurants map[kernel.OrderID]projection.RestaurantView
	customers   map[kernel.OrderID]projection.CustomerView
	candidates  map[kernel.OrderID]projection.DeliveryCandidateView
	assigned    map[kernel.OrderID]projection.DeliveryAssignedView
	history     map[historyKey]history.PreviousOrder
	outbox      map[kernel.UUID]outbox.Message
}

func newState() *state {
	return &state{
		orders:      make(map[kernel.OrderID]order.Snapshot),
		restaurants: make(map[kernel.OrderID]projection.RestaurantView),
		customers:   make(map[kernel.OrderID]projection.CustomerView),
		candidates:  make(map[kernel.OrderID]projection.DeliveryCandidateView),
		assigned:    make(map[kernel.OrderID]projection.DeliveryAssignedView),
		history:     make(map[historyKey]history.PreviousOrder),
		outbox:      make(map[kernel.UUID]outbox.Message),
	}
}

// clone copies the maps. Stored values are never mutated in place, so sharing them is safe.
func (s *state) clone() *state {
	return &state{
		orders:      maps.Clone(s.orders),
		restaurants: maps.Clone(s.restaurants),
		customers:   maps.Clone(s.customers),
		candidates:  maps.Clone(s.candidates),
		assigned:    maps.Clone(s.assigned),
		history:     maps.Clone(s.history),
		outbox:      maps.Clone(s.outbox),
	}
}

// op is a buffered write. It runs against the working copy at commit time.
type op func(s *state) error

// Store holds the committed state. All access goes through its mutex, which is also
// what serializes the compare-and-set of concurrent units of work.
type Store struct {
	mu    sync.RWMutex
	state *state
}

func NewStore() *Store {
	return &Store{state: newState()}
}

// apply runs ops on a copy of the committed state and publishes the copy only if every op
// succeeded.
func (s *Store) apply(ops ...op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	for _, fn := range ops {
		if err := fn(working); err != nil {
			return err
		}
	}
	s.state = working
	return nil
}

func (s *Store) read(fn func(s *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}
