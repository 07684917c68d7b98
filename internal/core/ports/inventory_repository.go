package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for stock records.
// Implementations must persist pending change entries in the same transaction
// as the quantity write, keeping the audit trail complete.
type InventoryRepository interface {
	// Add persists a new stock record.
	Add(ctx context.Context, aggregate *inventory.Record) error

	// Update persists changes to an existing stock record.
	Update(ctx context.Context, aggregate *inventory.Record) error

	// Get retrieves a stock record by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*inventory.Record, error)

	// GetForUpdate retrieves the record for one (owner, product) key and
	// locks its row for the duration of the surrounding transaction, so two
	// concurrent debits cannot both read the same pre-debit quantity.
	GetForUpdate(ctx context.Context, owner kernel.OwnerRef, productID kernel.UUID) (*inventory.Record, error)

	// GetAllByOwner lists an owner's stock records.
	GetAllByOwner(ctx context.Context, owner kernel.OwnerRef) ([]*inventory.Record, error)
}
