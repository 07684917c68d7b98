package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations must persist pending change-log entries and remarks in the
// same transaction as the order row itself.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row for the duration of
	// the surrounding transaction, serializing concurrent transitions on the
	// same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingCode resolves the order a carrier webhook refers to.
	GetByTrackingCode(ctx context.Context, trackingCode string) (*order.Order, error)

	// GetByCode retrieves an order by its human-shareable code.
	GetByCode(ctx context.Context, code string) (*order.Order, error)
}
