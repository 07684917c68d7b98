package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetPendingCODQueryResponse is the franchise's current COD balance.
type GetPendingCODQueryResponse struct {
	FranchiseID kernel.UUID
	Pending     decimal.Decimal
}

// GetPendingCODQueryHandler computes the pending-COD figure from the same
// activity extraction the statement handler uses, so the two never disagree.
type GetPendingCODQueryHandler struct {
	db         *gorm.DB
	reconciler services.Reconciler
}

// NewGetPendingCODQueryHandler creates a handler for pending-COD queries.
func NewGetPendingCODQueryHandler(db *gorm.DB) GetPendingCODQueryHandler {
	return GetPendingCODQueryHandler{db: db, reconciler: services.NewReconciler()}
}

// Handle executes the pending-COD query.
func (h GetPendingCODQueryHandler) Handle(
	ctx context.Context,
	query GetPendingCODQuery,
) (GetPendingCODQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPendingCODQueryResponse{}, err
	}

	orders, payments, err := loadFranchiseActivity(ctx, h.db, query.FranchiseID())
	if err != nil {
		return GetPendingCODQueryResponse{}, err
	}

	return GetPendingCODQueryResponse{
		FranchiseID: query.FranchiseID(),
		Pending:     h.reconciler.PendingCOD(orders, payments),
	}, nil
}
