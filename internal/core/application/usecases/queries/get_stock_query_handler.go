package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStockQueryHandler lists an owner's stock records sorted by product name.
type GetStockQueryHandler struct {
	db *gorm.DB
}

// NewGetStockQueryHandler creates a handler for stock listings.
func NewGetStockQueryHandler(db *gorm.DB) GetStockQueryHandler {
	return GetStockQueryHandler{db: db}
}

// Handle executes the stock listing query.
func (h GetStockQueryHandler) Handle(
	ctx context.Context,
	query GetStockQuery,
) ([]GetStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			product_name,
			status,
			quantity
		FROM inventory_records
		WHERE owner_kind = ? AND owner_id = ?
		ORDER BY product_name
	`, int(query.Owner().Kind()), query.Owner().ID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]GetStockQueryResponse, 0)
	for rows.Next() {
		var resp GetStockQueryResponse
		var id, productID uuid.UUID
		var status string

		if err = rows.Scan(&id, &productID, &resp.ProductName, &status, &resp.Quantity); err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.ProductID, err = kernel.UUIDFromBytes(productID[:])
		if err != nil {
			return nil, err
		}
		resp.Status = inventory.StockStatus(status)

		records = append(records, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
