package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetInFlightOrdersQueryHandler lists dispatched orders that still need
// carrier status updates.
type GetInFlightOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetInFlightOrdersQueryHandler creates a handler for in-flight listings.
func NewGetInFlightOrdersQueryHandler(db *gorm.DB) GetInFlightOrdersQueryHandler {
	return GetInFlightOrdersQueryHandler{db: db}
}

// Handle executes the in-flight orders query.
func (h GetInFlightOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetInFlightOrdersQuery,
) ([]GetInFlightOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			logistics,
			tracking_code
		FROM orders
		WHERE logistics IS NOT NULL
		  AND tracking_code <> ''
		  AND status IN (?, ?, ?, ?)
		ORDER BY created_at
	`,
		int(order.SentToDash),
		int(order.SentToCarrier),
		int(order.OutForDelivery),
		int(order.Rescheduled),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]GetInFlightOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetInFlightOrdersQueryResponse
		var id uuid.UUID
		var logistics string

		if err = rows.Scan(&id, &logistics, &resp.TrackingCode); err != nil {
			return nil, err
		}

		resp.OrderID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.Carrier, err = order.CarrierFromString(logistics)
		if err != nil {
			return nil, err
		}

		shipments = append(shipments, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
