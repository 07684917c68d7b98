package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

var ErrGetStockQueryIsNotConstructed = errors.New(
	"GetStockQuery must be created via NewGetStockQuery constructor",
)

// GetStockQuery lists every stock record in one owner's pool.
type GetStockQuery struct { //nolint:recvcheck //using for validation
	owner kernel.OwnerRef

	guard kernel.ConstructorGuard
}

// NewGetStockQuery creates a stock listing query for an owner's pool.
func NewGetStockQuery(owner kernel.OwnerRef) (GetStockQuery, error) {
	if err := owner.Validate(); err != nil {
		return GetStockQuery{}, err
	}

	return GetStockQuery{owner: owner, guard: kernel.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStockQuery) Validate() error {
	return q.guard.Validate(ErrGetStockQueryIsNotConstructed)
}

// Owner returns the pool being listed.
func (q GetStockQuery) Owner() kernel.OwnerRef {
	return q.owner
}

// GetStockQueryResponse is one stock record of an owner's pool.
type GetStockQueryResponse struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	Status      inventory.StockStatus
	Quantity    int
}
