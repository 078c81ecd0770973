package order

import (
	"fmt"
	"strings"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/errs"
)

// Billing holds the amounts fixed at checkout. BillTotal includes DeliveryFee.
type Billing struct {
	billTotal     kernel.Money
	deliveryFee   kernel.Money
	paymentMethod string
}

func NewBilling(billTotal, deliveryFee kernel.Money, paymentMethod string) (Billing, error) {
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		return Billing{}, errs.NewValueIsRequiredError("paymentMethod")
	}
	if billTotal.LessThan(deliveryFee) {
		return Billing{}, errs.NewValueIsInvalidErrorWithCause(
			"billTotal",
			fmt.Errorf("%s is less than delivery fee %s", billTotal, deliveryFee),
		)
	}
	return Billing{billTotal: billTotal, deliveryFee: deliveryFee, paymentMethod: paymentMethod}, nil
}

func (b Billing) BillTotal() kernel.Money   { return b.billTotal }
func (b Billing) DeliveryFee() kernel.Money { return b.deliveryFee }
func (b Billing) PaymentMethod() string     { return b.paymentMethod }

// ItemsTotal is the bill without the delivery fee: the restaurant's share.
func (b Billing) ItemsTotal() kernel.Money {
	total, err := b.billTotal.Sub(b.deliveryFee)
	if err != nil {
		return kernel.Money{}
	}
	return total
}
