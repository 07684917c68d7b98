// Package invoicerepo provides persistence for franchise payment claims and
// the informational payment log.
package invoicerepo

import (
	"time"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceDTO represents the database structure for invoice aggregates.
type InvoiceDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FranchiseID uuid.UUID       `gorm:"type:uuid;index"`
	PaidAmount  decimal.Decimal `gorm:"type:numeric(14,2)"`
	Approved    bool
	ApprovedAt  *time.Time
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for invoices.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// PaymentLogDTO is the historical record of a payment from the logistics
// operator to a franchise. Informational only; the reconciliation balance
// reads invoices, not this table.
type PaymentLogDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FranchiseID uuid.UUID       `gorm:"type:uuid;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2)"`
	Note        string
	PaidAt      time.Time
}

// TableName specifies the database table name for payment logs.
func (PaymentLogDTO) TableName() string {
	return "payment_logs"
}

// fromDomain converts an invoice aggregate to its database representation.
func fromDomain(inv *invoice.Invoice) InvoiceDTO {
	var approvedBy *uuid.UUID
	if id := inv.ApprovedBy(); id != nil {
		raw := id.Bytes()
		approvedBy = &raw
	}

	return InvoiceDTO{
		ID:          inv.ID().Bytes(),
		FranchiseID: inv.FranchiseID().Bytes(),
		PaidAmount:  inv.PaidAmount(),
		Approved:    inv.IsApproved(),
		ApprovedAt:  inv.ApprovedAt(),
		ApprovedBy:  approvedBy,
		CreatedAt:   inv.CreatedAt(),
	}
}

// logFromDomain converts a payment log entry into row form.
func logFromDomain(log invoice.PaymentLog) PaymentLogDTO {
	return PaymentLogDTO{
		ID:          log.ID.Bytes(),
		FranchiseID: log.FranchiseID.Bytes(),
		Amount:      log.Amount,
		Note:        log.Note,
		PaidAt:      log.PaidAt,
	}
}

// toDomain converts a database row back into an invoice aggregate.
func toDomain(dto InvoiceDTO) (*invoice.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	franchiseID, err := kernel.UUIDFromBytes(dto.FranchiseID[:])
	if err != nil {
		return nil, err
	}

	var approvedBy *kernel.UUID
	if dto.ApprovedBy != nil {
		by, byErr := kernel.UUIDFromBytes((*dto.ApprovedBy)[:])
		if byErr != nil {
			return nil, byErr
		}
		approvedBy = &by
	}

	return invoice.RestoreInvoice(
		id, franchiseID, dto.PaidAmount, dto.Approved, dto.ApprovedAt, approvedBy, dto.CreatedAt,
	)
}
