package queries

import (
	"context"
	"database/sql"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists an owner's orders newest first.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listings.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the listing query.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			id,
			code,
			customer_name,
			customer_phone,
			status,
			total_amount,
			logistics,
			tracking_code,
			created_at
		FROM orders
		WHERE owner_kind = ? AND owner_id = ?`
	args := []any{int(query.Owner().Kind()), query.Owner().ID().Bytes()}

	if status := query.Status(); status != nil {
		sqlText += ` AND status = ?`
		args = append(args, int(*status))
	}
	sqlText += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersQueryResponse
		var id uuid.UUID
		var status int
		var logistics sql.NullString

		err = rows.Scan(
			&id,
			&resp.Code,
			&resp.CustomerName,
			&resp.CustomerPhone,
			&status,
			&resp.TotalAmount,
			&logistics,
			&resp.TrackingCode,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.Status = order.Status(status)
		if logistics.Valid {
			c, carrierErr := order.CarrierFromString(logistics.String)
			if carrierErr != nil {
				return nil, carrierErr
			}
			resp.Logistics = &c
		}

		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
