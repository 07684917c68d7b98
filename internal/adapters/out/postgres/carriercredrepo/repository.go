// Package carriercredrepo persists carrier session credentials so a refreshed
// token survives process restarts and is shared across requests.
package carriercredrepo

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CredentialDTO represents the database structure for carrier credentials.
// One row per carrier.
type CredentialDTO struct {
	Carrier   string `gorm:"primaryKey;type:varchar(32)"`
	Token     string
	ExpiresAt time.Time
}

// TableName specifies the database table name for carrier credentials.
func (CredentialDTO) TableName() string {
	return "carrier_credentials"
}

// GormCredentialStore implements ports.CredentialStore using GORM.
type GormCredentialStore struct {
	db *gorm.DB
}

// NewGormCredentialStore creates a new GORM credential store.
func NewGormCredentialStore(db *gorm.DB) *GormCredentialStore {
	return &GormCredentialStore{db: db}
}

// Get returns the cached credential for a carrier, or nil when none is stored.
func (s *GormCredentialStore) Get(ctx context.Context, c order.Carrier) (*ports.CarrierCredential, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var dto CredentialDTO
	if err := s.db.WithContext(ctx).First(&dto, "carrier = ?", c.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	carrier, err := order.CarrierFromString(dto.Carrier)
	if err != nil {
		return nil, err
	}

	return &ports.CarrierCredential{
		Carrier:   carrier,
		Token:     dto.Token,
		ExpiresAt: dto.ExpiresAt,
	}, nil
}

// Put stores or replaces the credential for a carrier.
func (s *GormCredentialStore) Put(ctx context.Context, cred ports.CarrierCredential) error {
	if err := cred.Carrier.Validate(); err != nil {
		return err
	}

	dto := CredentialDTO{
		Carrier:   cred.Carrier.String(),
		Token:     cred.Token,
		ExpiresAt: cred.ExpiresAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "carrier"}},
			DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at"}),
		}).
		Create(&dto).Error
}
