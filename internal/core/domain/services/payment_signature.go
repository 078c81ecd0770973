package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"eatify/internal/pkg/errs"
)

var ErrPaymentSecretIsMissing = errors.New("payment secret is not configured")

// PaymentSignatureVerifier checks the gateway signature HMAC-SHA256(orderId|paymentId).
type PaymentSignatureVerifier struct {
	secret []byte
}

func NewPaymentSignatureVerifier(secret string) PaymentSignatureVerifier {
	return PaymentSignatureVerifier{secret: []byte(secret)}
}

func (v PaymentSignatureVerifier) Sign(gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches; malformed input is a validation error.
func (v PaymentSignatureVerifier) Verify(gatewayOrderID, paymentID, signature string) (bool, error) {
	if len(v.secret) == 0 {
		return false, ErrPaymentSecretIsMissing
	}
	if err := errors.Join(
		required("orderId", gatewayOrderID),
		required("paymentId", paymentID),
		required("signature", signature),
	); err != nil {
		return false, err
	}

	expected, _ := hex.DecodeString(v.Sign(gatewayOrderID, paymentID))
	given, err := hex.DecodeString(strings.ToLower(signature))
	if err != nil {
		return false, errs.NewValueIsInvalidErrorWithCause("signature", err)
	}
	return hmac.Equal(expected, given), nil
}

func required(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
