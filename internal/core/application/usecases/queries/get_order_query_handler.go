package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its log and remarks directly
// from the database, bypassing the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an object-not-found error when no order
// matches the address.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	where, arg := "id = ?", any(query.OrderID().Bytes())
	if query.Code() != "" {
		where, arg = "code = ?", any(query.Code())
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			owner_kind,
			owner_id,
			customer_name,
			customer_phone,
			customer_addr,
			payment_method,
			total_amount,
			prepaid_amount,
			delivery_charge,
			status,
			logistics,
			tracking_code,
			rider_id,
			created_at,
			updated_at
		FROM orders
		WHERE `+where, arg).Row()

	var resp GetOrderQueryResponse
	var id, ownerID uuid.UUID
	var ownerKind, status int
	var logistics sql.NullString
	var riderID uuid.NullUUID
	var paymentMethod string

	err := row.Scan(
		&id,
		&resp.Code,
		&ownerKind,
		&ownerID,
		&resp.CustomerName,
		&resp.CustomerPhone,
		&resp.CustomerAddr,
		&paymentMethod,
		&resp.TotalAmount,
		&resp.PrepaidAmount,
		&resp.DeliveryCharge,
		&status,
		&logistics,
		&resp.TrackingCode,
		&riderID,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", arg)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	kernelOwnerID, err := kernel.UUIDFromBytes(ownerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Owner, err = kernel.NewOwnerRef(kernel.OwnerKind(ownerKind), kernelOwnerID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.PaymentMethod = order.PaymentMethod(paymentMethod)
	resp.Status = order.Status(status)
	if logistics.Valid {
		c, carrierErr := order.CarrierFromString(logistics.String)
		if carrierErr != nil {
			return GetOrderQueryResponse{}, carrierErr
		}
		resp.Logistics = &c
	}
	if riderID.Valid {
		rID, riderErr := kernel.UUIDFromBytes(riderID.UUID[:])
		if riderErr != nil {
			return GetOrderQueryResponse{}, riderErr
		}
		resp.RiderID = &rID
	}

	if resp.Lines, err = h.loadLines(ctx, id); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Changes, err = h.loadChanges(ctx, id); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Remarks, err = h.loadRemarks(ctx, id); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadLines(ctx context.Context, orderID uuid.UUID) ([]OrderLineResponse, error) {
	lines := make([]OrderLineResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT product_id, quantity
		FROM order_lines
		WHERE order_id = ?
		ORDER BY id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var productRaw uuid.UUID
		var quantity int
		if err = rows.Scan(&productRaw, &quantity); err != nil {
			return nil, err
		}
		productID, idErr := kernel.UUIDFromBytes(productRaw[:])
		if idErr != nil {
			return nil, idErr
		}
		lines = append(lines, OrderLineResponse{ProductID: productID, Quantity: quantity})
	}

	return lines, rows.Err()
}

func (h GetOrderQueryHandler) loadChanges(ctx context.Context, orderID uuid.UUID) ([]OrderChangeResponse, error) {
	changes := make([]OrderChangeResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT old_status, new_status, actor_id, comment, occurred_at
		FROM order_status_changes
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var oldStatus, newStatus int
		var actorRaw uuid.UUID
		var comment string
		var occurredAt time.Time
		if err = rows.Scan(&oldStatus, &newStatus, &actorRaw, &comment, &occurredAt); err != nil {
			return nil, err
		}
		actorID, idErr := kernel.UUIDFromBytes(actorRaw[:])
		if idErr != nil {
			return nil, idErr
		}
		changes = append(changes, OrderChangeResponse{
			OldStatus:  order.Status(oldStatus),
			NewStatus:  order.Status(newStatus),
			ActorID:    actorID,
			Comment:    comment,
			OccurredAt: occurredAt,
		})
	}

	return changes, rows.Err()
}

func (h GetOrderQueryHandler) loadRemarks(ctx context.Context, orderID uuid.UUID) ([]OrderRemarkResponse, error) {
	remarks := make([]OrderRemarkResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT text, occurred_at
		FROM order_remarks
		WHERE order_id = ?
		ORDER BY occurred_at, id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var remark OrderRemarkResponse
		if err = rows.Scan(&remark.Text, &remark.OccurredAt); err != nil {
			return nil, err
		}
		remarks = append(remarks, remark)
	}

	return remarks, rows.Err()
}
