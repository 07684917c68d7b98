package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQueryByID or NewGetOrderQueryByCode constructor",
)

// GetOrderQuery fetches one order, addressed either by its ID or by its
// human-readable code. Exactly one of the two is set.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	code    string

	guard kernel.ConstructorGuard
}

// NewGetOrderQueryByID creates a query addressing the order by its ID.
func NewGetOrderQueryByID(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{orderID: orderID, guard: kernel.NewConstructorGuard()}, nil
}

// NewGetOrderQueryByCode creates a query addressing the order by its code.
func NewGetOrderQueryByCode(code string) (GetOrderQuery, error) {
	if code == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("code")
	}

	return GetOrderQuery{code: code, guard: kernel.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the addressed order ID, zero when addressing by code.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Code returns the addressed order code, empty when addressing by ID.
func (q GetOrderQuery) Code() string {
	return q.code
}

// OrderLineResponse is one position of an order read model.
type OrderLineResponse struct {
	ProductID kernel.UUID
	Quantity  int
}

// OrderChangeResponse is one row of an order's status change log.
type OrderChangeResponse struct {
	OldStatus  order.Status
	NewStatus  order.Status
	ActorID    kernel.UUID
	Comment    string
	OccurredAt time.Time
}

// OrderRemarkResponse is one observation attached to an order.
type OrderRemarkResponse struct {
	Text       string
	OccurredAt time.Time
}

// GetOrderQueryResponse is the full order read model, including the status
// change log and remarks in chronological order.
type GetOrderQueryResponse struct {
	ID             kernel.UUID
	Code           string
	Owner          kernel.OwnerRef
	CustomerName   string
	CustomerPhone  string
	CustomerAddr   string
	PaymentMethod  order.PaymentMethod
	TotalAmount    decimal.Decimal
	PrepaidAmount  decimal.Decimal
	DeliveryCharge decimal.Decimal
	Status         order.Status
	Logistics      *order.Carrier
	TrackingCode   string
	RiderID        *kernel.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Lines          []OrderLineResponse
	Changes        []OrderChangeResponse
	Remarks        []OrderRemarkResponse
}
