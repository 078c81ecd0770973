package queries

import (
	"context"

	"eatify/internal/core/domain/services"
)

type VerifyPaymentQueryHandler struct {
	verifier services.PaymentSignatureVerifier
}

func NewVerifyPaymentQueryHandler(verifier services.PaymentSignatureVerifier) VerifyPaymentQueryHandler {
	return VerifyPaymentQueryHandler{verifier: verifier}
}

// Handle reports whether the signature is authentic. Missing fields are validation errors.
func (h VerifyPaymentQueryHandler) Handle(_ context.Context, query VerifyPaymentQuery) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}
	return h.verifier.Verify(query.gatewayOrderID, query.paymentID, query.signature)
}
