package queries

import (
	"errors"
	"strings"

	"eatify/internal/pkg/guard"
)

var ErrVerifyPaymentQueryIsNotConstructed = errors.New(
	"VerifyPaymentQuery must be created via NewVerifyPaymentQuery constructor",
)

// VerifyPaymentQuery checks the signature the payment gateway handed to the client.
type VerifyPaymentQuery struct {
	gatewayOrderID string
	paymentID      string
	signature      string

	guard guard.ConstructorGuard
}

func NewVerifyPaymentQuery(gatewayOrderID, paymentID, signature string) VerifyPaymentQuery {
	return VerifyPaymentQuery{
		gatewayOrderID: strings.TrimSpace(gatewayOrderID),
		paymentID:      strings.TrimSpace(paymentID),
		signature:      strings.TrimSpace(signature),
		guard:          guard.NewConstructorGuard(),
	}
}

func (q VerifyPaymentQuery) Validate() error {
	return q.guard.Validate(ErrVerifyPaymentQueryIsNotConstructed)
}
