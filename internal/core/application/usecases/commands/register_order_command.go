package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterOrderCommandIsNotConstructed = errors.New(
	"RegisterOrderCommand must be created via NewRegisterOrderCommand constructor",
)

// RegisterOrderCommand hands an order over from checkout to fulfillment.
//
// Example:
//
//	items := []order.LineItem{{ProductID: "serum-30ml", Quantity: 1, UnitPrice: kernel.MustMoney(250000)}}
//	cmd, err := NewRegisterOrderCommand(orderID, customerID, "+84901234567", items, order.Confirmed, "", nil)
type RegisterOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   kernel.UUID
	contactPhone string
	items        []order.LineItem
	status       order.Status
	reason       string
	processedBy  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewRegisterOrderCommand validates identifiers, line items and the initial status.
func NewRegisterOrderCommand(
	orderID, customerID kernel.UUID,
	contactPhone string,
	items []order.LineItem,
	status order.Status,
	reason string,
	processedBy *kernel.UUID,
) (RegisterOrderCommand, error) {
	cmd := RegisterOrderCommand{
		contactPhone: strings.TrimSpace(contactPhone),
		reason:       strings.TrimSpace(reason),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
		cmd.setStatus(status),
		cmd.setProcessedBy(processedBy),
	); err != nil {
		return RegisterOrderCommand{}, err
	}

	return cmd, nil
}

func (c RegisterOrderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterOrderCommandIsNotConstructed)
}

func (c RegisterOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c RegisterOrderCommand) CustomerID() kernel.UUID { return c.customerID }
func (c RegisterOrderCommand) ContactPhone() string    { return c.contactPhone }
func (c RegisterOrderCommand) Items() []order.LineItem {
	return append([]order.LineItem(nil), c.items...)
}
func (c RegisterOrderCommand) Status() order.Status      { return c.status }
func (c RegisterOrderCommand) Reason() string            { return c.reason }
func (c RegisterOrderCommand) ProcessedBy() *kernel.UUID { return c.processedBy }

func (c *RegisterOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *RegisterOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *RegisterOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	c.items = append([]order.LineItem(nil), items...)
	return nil
}

func (c *RegisterOrderCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *RegisterOrderCommand) setProcessedBy(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	c.processedBy = id
	return nil
}
