package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// loadFranchiseActivity assembles the reconciliation inputs for one franchise:
// every order in the franchise's pool with its full status change log, plus
// every approved invoice payment. Both statement and pending-COD handlers
// read through this so the two figures are computed from identical data.
func loadFranchiseActivity(
	ctx context.Context, db *gorm.DB, franchiseID kernel.UUID,
) ([]services.OrderActivity, []services.InvoicePayment, error) {
	orders, err := loadOrderActivity(ctx, db, franchiseID)
	if err != nil {
		return nil, nil, err
	}

	payments, err := loadApprovedPayments(ctx, db, franchiseID)
	if err != nil {
		return nil, nil, err
	}

	return orders, payments, nil
}

func loadOrderActivity(
	ctx context.Context, db *gorm.DB, franchiseID kernel.UUID,
) ([]services.OrderActivity, error) {
	activities := make([]services.OrderActivity, 0)
	byOrder := make(map[uuid.UUID]int)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			total_amount,
			prepaid_amount,
			status,
			created_at,
			updated_at
		FROM orders
		WHERE owner_kind = ? AND owner_id = ?
		ORDER BY created_at
	`, int(kernel.OwnerFranchise), franchiseID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var total, prepaid decimal.Decimal
		var status int
		var createdAt, updatedAt time.Time

		if err = rows.Scan(&id, &total, &prepaid, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		byOrder[id] = len(activities)
		activities = append(activities, services.OrderActivity{
			OrderID:       orderID,
			TotalAmount:   total,
			PrepaidAmount: prepaid,
			CurrentStatus: order.Status(status),
			CreatedAt:     createdAt,
			UpdatedAt:     updatedAt,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(activities) == 0 {
		return activities, nil
	}

	logRows, err := db.WithContext(ctx).Raw(`
		SELECT
			c.order_id,
			c.old_status,
			c.new_status,
			c.actor_id,
			c.comment,
			c.occurred_at
		FROM order_status_changes c
		JOIN orders o ON o.id = c.order_id
		WHERE o.owner_kind = ? AND o.owner_id = ?
		ORDER BY c.occurred_at
	`, int(kernel.OwnerFranchise), franchiseID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer logRows.Close()

	for logRows.Next() {
		var orderRaw, actorRaw uuid.UUID
		var oldStatus, newStatus int
		var comment string
		var occurredAt time.Time

		if err = logRows.Scan(&orderRaw, &oldStatus, &newStatus, &actorRaw, &comment, &occurredAt); err != nil {
			return nil, err
		}

		idx, ok := byOrder[orderRaw]
		if !ok {
			continue
		}

		orderID, idErr := kernel.UUIDFromBytes(orderRaw[:])
		if idErr != nil {
			return nil, idErr
		}
		actorID, actorErr := kernel.UUIDFromBytes(actorRaw[:])
		if actorErr != nil {
			return nil, actorErr
		}

		activities[idx].StatusLog = append(activities[idx].StatusLog, order.ChangeEntry{
			OrderID:    orderID,
			OldStatus:  order.Status(oldStatus),
			NewStatus:  order.Status(newStatus),
			ActorID:    actorID,
			Comment:    comment,
			OccurredAt: occurredAt,
		})
	}
	if err = logRows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}

func loadApprovedPayments(
	ctx context.Context, db *gorm.DB, franchiseID kernel.UUID,
) ([]services.InvoicePayment, error) {
	payments := make([]services.InvoicePayment, 0)

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			paid_amount,
			approved_at
		FROM invoices
		WHERE franchise_id = ? AND approved
		ORDER BY approved_at
	`, franchiseID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var amount decimal.Decimal
		var approvedAt sql.NullTime

		if err = rows.Scan(&amount, &approvedAt); err != nil {
			return nil, err
		}
		if !approvedAt.Valid {
			continue
		}

		payments = append(payments, services.InvoicePayment{
			Amount:     amount,
			ApprovedAt: approvedAt.Time,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
