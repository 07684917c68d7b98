package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order, its lines, and any buffered log rows.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if lines := linesFromDomain(aggregate); len(lines) > 0 {
		if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
			return err
		}
	}

	if err := r.flushLog(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order and appends any buffered log rows. Lines are
// immutable and never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.flushLog(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.getOne(ctx, r.db.WithContext(ctx), "id = ?", id.Bytes())
}

// GetForUpdate retrieves an order and locks its row until the surrounding
// transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	locked := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getOne(ctx, locked, "id = ?", id.Bytes())
}

// GetByTrackingCode resolves the order a carrier event refers to.
func (r *GormOrderRepository) GetByTrackingCode(ctx context.Context, trackingCode string) (*order.Order, error) {
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("trackingCode")
	}
	return r.getOne(ctx, r.db.WithContext(ctx), "tracking_code = ?", trackingCode)
}

// GetByCode retrieves an order by its human-shareable code.
func (r *GormOrderRepository) GetByCode(ctx context.Context, code string) (*order.Order, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	return r.getOne(ctx, r.db.WithContext(ctx), "code = ?", code)
}

func (r *GormOrderRepository) getOne(ctx context.Context, tx *gorm.DB, query string, arg any) (*order.Order, error) {
	var dto OrderDTO
	if err := tx.First(&dto, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", arg)
		}
		return nil, err
	}

	var lines []OrderLineDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&lines, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, lines)
}

// flushLog appends the aggregate's drained change entries and remarks. Rows
// ride the same transaction as the order write; draining keeps retries from
// duplicating them.
func (r *GormOrderRepository) flushLog(ctx context.Context, aggregate *order.Order) error {
	if changes := changesFromDomain(aggregate.DrainChanges()); len(changes) > 0 {
		if err := r.db.WithContext(ctx).Create(&changes).Error; err != nil {
			return err
		}
	}
	if remarks := remarksFromDomain(aggregate.DrainRemarks()); len(remarks) > 0 {
		if err := r.db.WithContext(ctx).Create(&remarks).Error; err != nil {
			return err
		}
	}
	return nil
}
