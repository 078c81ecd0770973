package kernel

import (
	"fmt"
	"strings"

	"eatify/internal/pkg/errs"
)

const maxOrderIDLength = 64

// OrderID is supplied by the caller at creation and never changes afterwards.
type OrderID string

func NewOrderID(raw string) (OrderID, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", errs.NewValueIsRequiredError("orderId")
	}
	if len(id) > maxOrderIDLength {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"orderId",
			fmt.Errorf("length %d exceeds %d", len(id), maxOrderIDLength),
		)
	}
	return OrderID(id), nil
}

func (id OrderID) String() string {
	return string(id)
}

func (id OrderID) Validate() error {
	if strings.TrimSpace(string(id)) == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	return nil
}
