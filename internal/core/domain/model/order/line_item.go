package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// LineItem is one product of the purchase with its price at checkout time.
type LineItem struct {
	ProductID string
	Quantity  int
	UnitPrice kernel.Money
}

func (li LineItem) Validate() error {
	if strings.TrimSpace(li.ProductID) == "" {
		return errs.NewValueIsRequiredError("product id")
	}
	if li.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", li.Quantity))
	}
	return nil
}

// Subtotal is quantity times price-at-purchase.
func (li LineItem) Subtotal() (kernel.Money, error) {
	return li.UnitPrice.Multiply(li.Quantity)
}
