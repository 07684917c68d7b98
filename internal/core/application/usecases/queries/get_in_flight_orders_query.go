package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

var ErrGetInFlightOrdersQueryIsNotConstructed = errors.New(
	"GetInFlightOrdersQuery must be created via NewGetInFlightOrdersQuery constructor",
)

// GetInFlightOrdersQuery lists orders that sit with a carrier and still await
// a terminal outcome. The status poller runs it on every tick.
type GetInFlightOrdersQuery struct { //nolint:recvcheck //using for validation
	guard kernel.ConstructorGuard
}

// NewGetInFlightOrdersQuery creates an in-flight orders listing query.
func NewGetInFlightOrdersQuery() (GetInFlightOrdersQuery, error) {
	return GetInFlightOrdersQuery{guard: kernel.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetInFlightOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetInFlightOrdersQueryIsNotConstructed)
}

// GetInFlightOrdersQueryResponse is one shipment to poll the carrier about.
type GetInFlightOrdersQueryResponse struct {
	OrderID      kernel.UUID
	Carrier      order.Carrier
	TrackingCode string
}
