package memory

import (
	"context"
	"sync"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/verification"
	"eatify/internal/core/ports"
	"eatify/internal/pkg/errs"
)

var _ ports.CodeStore = &CodeStore{}

// CodeStore keeps live codes in a map. Expiry is checked on every read, Sweep only
// reclaims memory.
type CodeStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	codes map[kernel.OrderID]verification.Code
}

func NewCodeStore(ttl time.Duration) *CodeStore {
	if ttl <= 0 {
		ttl = verification.DefaultTTL
	}
	return &CodeStore{ttl: ttl, codes: make(map[kernel.OrderID]verification.Code)}
}

func (c *CodeStore) Put(_ context.Context, code verification.Code) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.codes[code.OrderID()] = code
	return nil
}

func (c *CodeStore) Consume(_ context.Context, id kernel.OrderID, candidate string, now time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	code, ok := c.codes[id]
	if !ok || code.IsExpired(now, c.ttl) {
		delete(c.codes, id)
		return errs.NewObjectNotFoundError("verificationCode", id.String())
	}
	if !code.Matches(candidate) {
		return errs.NewCodeMismatchError("orderId", id.String())
	}
	delete(c.codes, id)
	return nil
}

func (c *CodeStore) Delete(_ context.Context, id kernel.OrderID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.codes, id)
	return nil
}

func (c *CodeStore) Sweep(_ context.Context, now time.Time) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for id, code := range c.codes {
		if code.IsExpired(now, c.ttl) {
			delete(c.codes, id)
			removed++
		}
	}
	return removed, nil
}

// Len returns how many codes are held, expired ones included.
func (c *CodeStore) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.codes)
}
