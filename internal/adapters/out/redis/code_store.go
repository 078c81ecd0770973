// Package redis keeps verification codes in Redis so every replica sees the same live code.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/verification"
	"eatify/internal/core/ports"
	"eatify/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const codeKeyPrefix = "verification_code:"

// compareAndDeleteScript deletes KEYS[1] only while it still holds ARGV[1], so a code
// replaced by a reissue between read and delete survives.
var compareAndDeleteScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

var _ ports.CodeStore = &CodeStore{}

// CodeStore stores "digits|issuedAtMillis" under one key per order. Redis expires the key
// after the TTL; expiry is also checked against the caller's clock on every Consume.
type CodeStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCodeStore(client *redis.Client, ttl time.Duration) *CodeStore {
	if ttl <= 0 {
		ttl = verification.DefaultTTL
	}
	return &CodeStore{client: client, ttl: ttl}
}

func key(id kernel.OrderID) string {
	return codeKeyPrefix + id.String()
}

func encode(code verification.Code) string {
	return code.Digits() + "|" + strconv.FormatInt(code.IssuedAt().UnixMilli(), 10)
}

func decode(id kernel.OrderID, raw string) (verification.Code, error) {
	digits, millis, ok := strings.Cut(raw, "|")
	if !ok {
		return verification.Code{}, fmt.Errorf("malformed verification code entry for %s", id)
	}
	issuedAt, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return verification.Code{}, fmt.Errorf("malformed verification code timestamp for %s: %w", id, err)
	}
	return verification.NewCode(id, digits, time.UnixMilli(issuedAt))
}

// Put replaces any live code for the order.
func (c *CodeStore) Put(ctx context.Context, code verification.Code) error {
	return c.client.Set(ctx, key(code.OrderID()), encode(code), c.ttl).Err()
}

func (c *CodeStore) Consume(ctx context.Context, id kernel.OrderID, candidate string, now time.Time) error {
	raw, err := c.client.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return errs.NewObjectNotFoundError("verificationCode", id.String())
	}
	if err != nil {
		return err
	}

	code, err := decode(id, raw)
	if err != nil {
		return err
	}

	if code.IsExpired(now, c.ttl) {
		if err = compareAndDeleteScript.Run(ctx, c.client, []string{key(id)}, raw).Err(); err != nil {
			return err
		}
		return errs.NewObjectNotFoundError("verificationCode", id.String())
	}

	if !code.Matches(candidate) {
		return errs.NewCodeMismatchError("orderId", id.String())
	}

	deleted, err := compareAndDeleteScript.Run(ctx, c.client, []string{key(id)}, raw).Int()
	if err != nil {
		return err
	}
	// Another confirm or a reissue got there first.
	if deleted == 0 {
		return errs.NewObjectNotFoundError("verificationCode", id.String())
	}
	return nil
}

func (c *CodeStore) Delete(ctx context.Context, id kernel.OrderID) error {
	return c.client.Del(ctx, key(id)).Err()
}

// Sweep is a no-op: Redis evicts expired keys on its own.
func (c *CodeStore) Sweep(context.Context, time.Time) (int, error) {
	return 0, nil
}
