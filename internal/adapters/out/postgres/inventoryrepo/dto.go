// Package inventoryrepo provides persistence for stock records and their
// append-only change log.
package inventoryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RecordDTO represents the database structure for stock records. One row per
// (owner, product) pair; the composite unique index is what makes the
// create-or-credit upsert race-free under row locks.
type RecordDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerKind   int       `gorm:"type:smallint;uniqueIndex:idx_inventory_owner_product"`
	OwnerID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_inventory_owner_product"`
	ProductID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_inventory_owner_product"`
	ProductName string
	Status      string `gorm:"type:varchar(32)"`
	Quantity    int
}

// TableName specifies the database table name for stock records.
func (RecordDTO) TableName() string {
	return "inventory_records"
}

// ChangeDTO is one row of a record's audit trail.
type ChangeDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	RecordID    uuid.UUID `gorm:"type:uuid;index"`
	OldQuantity int
	NewQuantity int
	Action      string    `gorm:"type:varchar(32)"`
	ActorID     uuid.UUID `gorm:"type:uuid"`
	OccurredAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for inventory changes.
func (ChangeDTO) TableName() string {
	return "inventory_changes"
}

// fromDomain converts a stock record aggregate to its database representation.
func fromDomain(r *inventory.Record) RecordDTO {
	return RecordDTO{
		ID:          r.ID().Bytes(),
		OwnerKind:   int(r.Owner().Kind()),
		OwnerID:     r.Owner().ID().Bytes(),
		ProductID:   r.ProductID().Bytes(),
		ProductName: r.ProductName(),
		Status:      string(r.Status()),
		Quantity:    r.Quantity(),
	}
}

// changesFromDomain converts drained change entries into row form.
func changesFromDomain(entries []inventory.ChangeEntry) []ChangeDTO {
	rows := make([]ChangeDTO, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, ChangeDTO{
			RecordID:    e.RecordID.Bytes(),
			OldQuantity: e.OldQuantity,
			NewQuantity: e.NewQuantity,
			Action:      string(e.Action),
			ActorID:     e.ActorID.Bytes(),
			OccurredAt:  e.OccurredAt,
		})
	}
	return rows
}

// toDomain converts a database row back into a stock record aggregate.
func toDomain(dto RecordDTO) (*inventory.Record, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	owner, err := kernel.NewOwnerRef(kernel.OwnerKind(dto.OwnerKind), ownerID)
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return inventory.RestoreRecord(
		id, owner, productID, dto.ProductName, inventory.StockStatus(dto.Status), dto.Quantity,
	)
}
