package ports

import (
	"context"
	"time"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/verification"
)

// CodeStore keeps at most one live verification code per order.
type CodeStore interface {
	// Put stores code, replacing any code already live for the same order.
	Put(ctx context.Context, code verification.Code) error

	// Consume validates candidate against the live code. It returns *errs.ObjectNotFoundError
	// when no unexpired code exists at now, *errs.CodeMismatchError when candidate differs
	// (the code stays live), and nil after deleting a matching code.
	Consume(ctx context.Context, id kernel.OrderID, candidate string, now time.Time) error

	Delete(ctx context.Context, id kernel.OrderID) error

	// Sweep drops expired codes and returns how many were removed.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// CodeNotification is handed to the notification collaborator for out-of-band delivery.
type CodeNotification struct {
	OrderID   kernel.OrderID
	Code      string
	Recipient string
	ExpiresAt time.Time
}

type Notifier interface {
	Notify(ctx context.Context, n CodeNotification) error
}
