// Package verification models the short-lived code that authenticates the handoff
// between delivery partner and customer.
package verification

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/errs"
)

const (
	// DefaultTTL is how long an issued code stays valid.
	DefaultTTL = 300 * time.Second

	minCode = 1000
	maxCode = 9999
)

// Code is bound to exactly one order; lookups are always keyed by order id.
type Code struct {
	orderID  kernel.OrderID
	digits   string
	issuedAt time.Time
}

// Generate draws a code uniformly from 1000..9999.
func Generate(orderID kernel.OrderID, now time.Time) (Code, error) {
	return GenerateFrom(rand.Reader, orderID, now)
}

func GenerateFrom(random io.Reader, orderID kernel.OrderID, now time.Time) (Code, error) {
	n, err := rand.Int(random, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return Code{}, fmt.Errorf("generate verification code: %w", err)
	}
	return NewCode(orderID, strconv.FormatInt(n.Int64()+minCode, 10), now)
}

// NewCode restores a code from storage.
func NewCode(orderID kernel.OrderID, digits string, issuedAt time.Time) (Code, error) {
	if err := orderID.Validate(); err != nil {
		return Code{}, err
	}
	n, err := strconv.Atoi(digits)
	if err != nil || len(digits) != 4 {
		return Code{}, errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%q is not a 4 digit code", digits))
	}
	if n < minCode || n > maxCode {
		return Code{}, errs.NewValueIsOutOfRangeError("code", n, minCode, maxCode)
	}
	return Code{orderID: orderID, digits: digits, issuedAt: issuedAt.UTC()}, nil
}

func (c Code) OrderID() kernel.OrderID { return c.orderID }
func (c Code) Digits() string          { return c.digits }
func (c Code) IssuedAt() time.Time     { return c.issuedAt }

func (c Code) ExpiresAt(ttl time.Duration) time.Time {
	return c.issuedAt.Add(ttl)
}

// IsExpired is true from issuedAt+ttl onwards.
func (c Code) IsExpired(now time.Time, ttl time.Duration) bool {
	return !now.Before(c.ExpiresAt(ttl))
}

func (c Code) Matches(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(c.digits), []byte(candidate)) == 1
}

func (c Code) IsZero() bool {
	return c.digits == ""
}
