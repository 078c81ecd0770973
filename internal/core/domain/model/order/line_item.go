package order

import (
	"strings"

	"eatify/internal/pkg/errs"
)

const (
	minQuantity = 1
	maxQuantity = 999
)

// LineItem is one (itemName, quantity) row of an order.
type LineItem struct {
	name     string
	quantity int
}

func NewLineItem(name string, quantity int) (LineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("itemName")
	}
	if quantity < minQuantity || quantity > maxQuantity {
		return LineItem{}, errs.NewValueIsOutOfRangeError("quantity", quantity, minQuantity, maxQuantity)
	}
	return LineItem{name: name, quantity: quantity}, nil
}

func (li LineItem) Name() string  { return li.name }
func (li LineItem) Quantity() int { return li.quantity }
