package queries

import (
	"context"

	"fulfillment/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetStatementQueryHandler builds franchise statements from the order
// transition log and the approved invoice payments. All derivation is
// delegated to the domain reconciler; this handler only assembles its inputs.
type GetStatementQueryHandler struct {
	db         *gorm.DB
	reconciler services.Reconciler
}

// NewGetStatementQueryHandler creates a handler for statement queries.
func NewGetStatementQueryHandler(db *gorm.DB) GetStatementQueryHandler {
	return GetStatementQueryHandler{db: db, reconciler: services.NewReconciler()}
}

// Handle executes the statement query for the requested range.
func (h GetStatementQueryHandler) Handle(
	ctx context.Context,
	query GetStatementQuery,
) (services.Statement, error) {
	if err := query.Validate(); err != nil {
		return services.Statement{}, err
	}

	orders, payments, err := loadFranchiseActivity(ctx, h.db, query.FranchiseID())
	if err != nil {
		return services.Statement{}, err
	}

	return h.reconciler.Statement(orders, payments, query.Start(), query.End()), nil
}
