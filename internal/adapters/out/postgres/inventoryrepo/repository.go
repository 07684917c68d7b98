package inventoryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new stock record and its buffered change entries.
func (r *GormInventoryRepository) Add(ctx context.Context, aggregate *inventory.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.flushChanges(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing stock record and appends its buffered change entries.
func (r *GormInventoryRepository) Update(ctx context.Context, aggregate *inventory.Record) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.flushChanges(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a stock record by ID.
func (r *GormInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("record", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves the record for one (owner, product) key and locks
// its row, serializing the check-and-decrement against concurrent debits.
func (r *GormInventoryRepository) GetForUpdate(
	ctx context.Context, owner kernel.OwnerRef, productID kernel.UUID,
) (*inventory.Record, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "owner_kind = ? AND owner_id = ? AND product_id = ?",
			int(owner.Kind()), owner.ID().Bytes(), productID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("productID", productID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOwner lists an owner's stock records sorted by product name.
func (r *GormInventoryRepository) GetAllByOwner(
	ctx context.Context, owner kernel.OwnerRef,
) ([]*inventory.Record, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	var dtos []RecordDTO
	err := r.db.WithContext(ctx).
		Order("product_name").
		Find(&dtos, "owner_kind = ? AND owner_id = ?", int(owner.Kind()), owner.ID().Bytes()).Error
	if err != nil {
		return nil, err
	}

	records := make([]*inventory.Record, 0, len(dtos))
	for _, dto := range dtos {
		record, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *GormInventoryRepository) flushChanges(ctx context.Context, aggregate *inventory.Record) error {
	changes := changesFromDomain(aggregate.DrainChanges())
	if len(changes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&changes).Error
}
