// Package orderrepo persists order aggregates and their line items.
package orderrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/pgutil"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Items live in order_items and are written once,
// when the order is registered.
type OrderDTO struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID     `gorm:"type:uuid;not null;index"`
	ContactPhone   string        `gorm:"type:varchar(32)"`
	Total          int64         `gorm:"not null"`
	Status         int           `gorm:"not null;index"`
	UpstreamReason string        `gorm:"type:text"`
	ProcessedBy    *uuid.UUID    `gorm:"type:uuid"`
	ReturnedAt     *time.Time    `gorm:"type:timestamptz"`
	CreatedAt      time.Time     `gorm:"type:timestamptz;not null"`
	UpdatedAt      time.Time     `gorm:"type:timestamptz;not null"`
	Version        int64         `gorm:"not null;default:0"`
	Items          []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is one order_items row. Position keeps the checkout order.
type LineItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey"`
	ProductID string    `gorm:"type:varchar(255);not null"`
	Quantity  int       `gorm:"not null"`
	UnitPrice int64     `gorm:"not null"`
}

func (LineItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	items := make([]LineItemDTO, 0, len(o.Items()))
	for i, item := range o.Items() {
		items = append(items, LineItemDTO{
			OrderID:   id,
			Position:  i,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Amount(),
		})
	}

	return OrderDTO{
		ID:             id,
		CustomerID:     o.CustomerID().Bytes(),
		ContactPhone:   o.ContactPhone(),
		Total:          o.Total().Amount(),
		Status:         int(o.Status()),
		UpstreamReason: o.UpstreamReason(),
		ProcessedBy:    pgutil.NullableUUID(o.ProcessedBy()),
		ReturnedAt:     o.ReturnedAt(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
		Version:        o.Version(),
		Items:          items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	processedBy, err := kernel.UUIDFromOptional(dto.ProcessedBy)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		price, priceErr := kernel.NewMoney(item.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		items = append(items, order.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: price,
		})
	}

	return order.RestoreOrder(
		id, customerID, dto.ContactPhone, items,
		order.Status(dto.Status), dto.UpstreamReason, processedBy, dto.ReturnedAt,
		dto.CreatedAt, dto.UpdatedAt, dto.Version,
	)
}
