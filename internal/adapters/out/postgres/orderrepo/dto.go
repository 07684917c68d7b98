// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, including the status change log and remark rows the aggregate
// buffers between mutations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Owner columns are indexed together for the per-pool listings; the tracking
// code is indexed for webhook lookups.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code           string    `gorm:"uniqueIndex"`
	OwnerKind      int       `gorm:"type:smallint;index:idx_orders_owner"`
	OwnerID        uuid.UUID `gorm:"type:uuid;index:idx_orders_owner"`
	CustomerName   string
	CustomerPhone  string
	CustomerAddr   string
	PaymentMethod  string
	TotalAmount    decimal.Decimal `gorm:"type:numeric(14,2)"`
	PrepaidAmount  decimal.Decimal `gorm:"type:numeric(14,2)"`
	DeliveryCharge decimal.Decimal `gorm:"type:numeric(14,2)"`
	Status         int             `gorm:"index"`
	Logistics      *string
	TrackingCode   string     `gorm:"index"`
	RiderID        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is one order position. Lines are immutable after order
// creation and are loaded alongside the order row.
type OrderLineDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Quantity  int
}

// TableName specifies the database table name for order lines.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// ChangeDTO is one row of the order's status change log. Rows are append-only
// and written in the same transaction as the order itself.
type ChangeDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	OldStatus  int
	NewStatus  int
	ActorID    uuid.UUID `gorm:"type:uuid"`
	Comment    string
	OccurredAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for order status changes.
func (ChangeDTO) TableName() string {
	return "order_status_changes"
}

// RemarkDTO is an observation attached to an order without a status change.
type RemarkDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Text       string
	OccurredAt time.Time
}

// TableName specifies the database table name for order remarks.
func (RemarkDTO) TableName() string {
	return "order_remarks"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	var logistics *string
	if c := o.Logistics(); c != nil {
		s := c.String()
		logistics = &s
	}

	var riderID *uuid.UUID
	if id := o.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	customer := o.Customer()
	return OrderDTO{
		ID:             o.ID().Bytes(),
		Code:           o.Code(),
		OwnerKind:      int(o.Owner().Kind()),
		OwnerID:        o.Owner().ID().Bytes(),
		CustomerName:   customer.Name,
		CustomerPhone:  customer.Phone,
		CustomerAddr:   customer.Address,
		PaymentMethod:  string(o.PaymentMethod()),
		TotalAmount:    o.TotalAmount(),
		PrepaidAmount:  o.PrepaidAmount(),
		DeliveryCharge: o.DeliveryCharge(),
		Status:         int(o.Status()),
		Logistics:      logistics,
		TrackingCode:   o.TrackingCode(),
		RiderID:        riderID,
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
	}
}

// linesFromDomain converts the aggregate's lines into row form.
func linesFromDomain(o *order.Order) []OrderLineDTO {
	lines := make([]OrderLineDTO, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:   o.ID().Bytes(),
			ProductID: line.ProductID.Bytes(),
			Quantity:  line.Quantity,
		})
	}
	return lines
}

// changesFromDomain converts drained change entries into row form.
func changesFromDomain(entries []order.ChangeEntry) []ChangeDTO {
	rows := make([]ChangeDTO, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ChangeDTO{
			OrderID:    e.OrderID.Bytes(),
			OldStatus:  int(e.OldStatus),
			NewStatus:  int(e.NewStatus),
			ActorID:    e.ActorID.Bytes(),
			Comment:    e.Comment,
			OccurredAt: e.OccurredAt,
		})
	}
	return rows
}

// remarksFromDomain converts drained remarks into row form.
func remarksFromDomain(remarks []order.Remark) []RemarkDTO {
	rows := make([]RemarkDTO, 0, len(remarks))
	for _, r := range remarks {
		rows = append(rows, RemarkDTO{
			OrderID:    r.OrderID.Bytes(),
			Text:       r.Text,
			OccurredAt: r.OccurredAt,
		})
	}
	return rows
}

// toDomain converts database rows back into an order aggregate.
func toDomain(dto OrderDTO, lineDTOs []OrderLineDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	owner, err := kernel.NewOwnerRef(kernel.OwnerKind(dto.OwnerKind), ownerID)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(lineDTOs))
	for _, l := range lineDTOs {
		productID, lineErr := kernel.UUIDFromBytes(l.ProductID[:])
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, order.Line{ProductID: productID, Quantity: l.Quantity})
	}

	var logistics *order.Carrier
	if dto.Logistics != nil {
		c, carrierErr := order.CarrierFromString(*dto.Logistics)
		if carrierErr != nil {
			return nil, carrierErr
		}
		logistics = &c
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	return order.RestoreOrder(
		id,
		dto.Code,
		owner,
		order.Customer{Name: dto.CustomerName, Phone: dto.CustomerPhone, Address: dto.CustomerAddr},
		lines,
		order.PaymentMethod(dto.PaymentMethod),
		dto.TotalAmount,
		dto.PrepaidAmount,
		dto.DeliveryCharge,
		order.Status(dto.Status),
		logistics,
		dto.TrackingCode,
		riderID,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
