package memory_test

import (
	"testing"
	"time"

	"eatify/internal/core/domain/model/history"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/order"
	"eatify/internal/core/domain/model/verification"
	"eatify/internal/core/ports"

	"github.com/stretchr/testify/require"
)

func mustCode(t *testing.T, id kernel.OrderID, digits string, issuedAt time.Time) verification.Code {
	t.Helper()
	code, err := verification.NewCode(id, digits, issuedAt)
	require.NoError(t, err)
	return code
}

func historyEntry(o *order.Order) (history.PreviousOrder, error) {
	return history.FromOrder(o, kernel.RoleCustomer, o.Customer().Email(), now)
}

func notification(id kernel.OrderID, code string) ports.CodeNotification {
	return ports.CodeNotification{OrderID: id, Code: code, Recipient: "ann@example.com", ExpiresAt: now}
}
