package ports

import (
	"context"

	"eatify/internal/core/domain/model/history"
	"eatify/internal/core/domain/model/kernel"
)

type HistoryRepository interface {
	// Append inserts entry unless one already exists for its owner and order id.
	// inserted reports whether a row was written.
	Append(ctx context.Context, entry history.PreviousOrder) (inserted bool, err error)

	ListByOwner(ctx context.Context, role kernel.Role, email string) ([]history.PreviousOrder, error)
}
