package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists the orders of one owner's pool, optionally narrowed
// to a single status.
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	owner  kernel.OwnerRef
	status *order.Status

	guard kernel.ConstructorGuard
}

// NewGetOrdersQuery creates a listing query for an owner's pool. A nil status
// lists every order in the pool.
func NewGetOrdersQuery(owner kernel.OwnerRef, status *order.Status) (GetOrdersQuery, error) {
	if err := owner.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		owner:  owner,
		status: status,
		guard:  kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Owner returns the pool being listed.
func (q GetOrdersQuery) Owner() kernel.OwnerRef {
	return q.owner
}

// Status returns the status filter, nil when listing all.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// GetOrdersQueryResponse is one row of an order listing.
type GetOrdersQueryResponse struct {
	ID            kernel.UUID
	Code          string
	CustomerName  string
	CustomerPhone string
	Status        order.Status
	TotalAmount   decimal.Decimal
	Logistics     *order.Carrier
	TrackingCode  string
	CreatedAt     time.Time
}
