package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetBranchesQueryHandler proxies branch listings to the carrier adapters.
// This is the one query that reads an external system instead of the
// database; carrier outages surface as carrier-unavailable errors.
type GetBranchesQueryHandler struct {
	carriers ports.CarrierResolver
}

// NewGetBranchesQueryHandler creates a handler for branch listing queries.
func NewGetBranchesQueryHandler(carriers ports.CarrierResolver) GetBranchesQueryHandler {
	return GetBranchesQueryHandler{carriers: carriers}
}

// Handle executes the branch listing query.
func (h GetBranchesQueryHandler) Handle(
	ctx context.Context,
	query GetBranchesQuery,
) ([]ports.Branch, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	client, err := h.carriers.Resolve(query.Carrier())
	if err != nil {
		return nil, err
	}

	return client.Branches(ctx)
}
