package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrGetPendingCODQueryIsNotConstructed = errors.New(
	"GetPendingCODQuery must be created via NewGetPendingCODQuery constructor",
)

// GetPendingCODQuery requests the single figure the operator currently owes
// a franchise: delivered COD minus delivery charges minus approved payments,
// floored at zero.
type GetPendingCODQuery struct { //nolint:recvcheck //using for validation
	franchiseID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetPendingCODQuery creates a pending-COD query for one franchise.
func NewGetPendingCODQuery(franchiseID kernel.UUID) (GetPendingCODQuery, error) {
	if err := franchiseID.Validate(); err != nil {
		return GetPendingCODQuery{}, err
	}

	return GetPendingCODQuery{
		franchiseID: franchiseID,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingCODQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingCODQueryIsNotConstructed)
}

// FranchiseID returns the franchise whose balance is requested.
func (q GetPendingCODQuery) FranchiseID() kernel.UUID {
	return q.franchiseID
}
