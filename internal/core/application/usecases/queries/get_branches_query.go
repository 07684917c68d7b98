package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

var ErrGetBranchesQueryIsNotConstructed = errors.New(
	"GetBranchesQuery must be created via NewGetBranchesQuery constructor",
)

// GetBranchesQuery fetches a carrier's serviceable branch list.
type GetBranchesQuery struct { //nolint:recvcheck //using for validation
	carrier order.Carrier

	guard kernel.ConstructorGuard
}

// NewGetBranchesQuery creates a branch listing query for one carrier.
func NewGetBranchesQuery(carrier order.Carrier) (GetBranchesQuery, error) {
	if err := carrier.Validate(); err != nil {
		return GetBranchesQuery{}, err
	}

	return GetBranchesQuery{carrier: carrier, guard: kernel.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBranchesQuery) Validate() error {
	return q.guard.Validate(ErrGetBranchesQueryIsNotConstructed)
}

// Carrier returns the carrier whose branches are requested.
func (q GetBranchesQuery) Carrier() order.Carrier {
	return q.carrier
}
