// Package invoice models franchise-scoped payment claims against the
// logistics operator. An approved invoice is a permanent deduction in the COD
// reconciliation; approval happens exactly once and is idempotent.
package invoice

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrInvoiceIsNotConstructed is returned when an Invoice was not created
// through NewInvoice or RestoreInvoice.
var ErrInvoiceIsNotConstructed = errs.NewValueIsRequiredError(
	"Invoice must be created via NewInvoice or RestoreInvoice constructor")

// Invoice is a payment claim raised for a franchise. It is created
// unapproved; once approved, the approval time is immutable and the paid
// amount is deducted from the franchise's running COD balance.
type Invoice struct {
	id          kernel.UUID
	franchiseID kernel.UUID
	paidAmount  decimal.Decimal
	approved    bool
	approvedAt  *time.Time
	approvedBy  *kernel.UUID
	createdAt   time.Time

	guard kernel.ConstructorGuard
}

// NewInvoice creates an unapproved invoice over a positive paid amount.
func NewInvoice(id, franchiseID kernel.UUID, paidAmount decimal.Decimal) (*Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := franchiseID.Validate(); err != nil {
		return nil, err
	}
	if !paidAmount.IsPositive() {
		return nil, errs.NewValueIsInvalidError("paidAmount")
	}

	return &Invoice{
		id:          id,
		franchiseID: franchiseID,
		paidAmount:  paidAmount,
		createdAt:   time.Now().UTC(),
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// RestoreInvoice reconstructs an invoice from persistence.
// Used only by repository implementations.
func RestoreInvoice(
	id, franchiseID kernel.UUID,
	paidAmount decimal.Decimal,
	approved bool,
	approvedAt *time.Time,
	approvedBy *kernel.UUID,
	createdAt time.Time,
) (*Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := franchiseID.Validate(); err != nil {
		return nil, err
	}
	if approved && approvedAt == nil {
		return nil, errs.NewValueIsRequiredError("approvedAt")
	}

	return &Invoice{
		id:          id,
		franchiseID: franchiseID,
		paidAmount:  paidAmount,
		approved:    approved,
		approvedAt:  approvedAt,
		approvedBy:  approvedBy,
		createdAt:   createdAt,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the invoice was created through a constructor.
func (i *Invoice) Validate() error {
	if i == nil {
		return ErrInvoiceIsNotConstructed
	}
	return i.guard.Validate(ErrInvoiceIsNotConstructed)
}

// ID returns the invoice's unique identifier.
func (i *Invoice) ID() kernel.UUID {
	return i.id
}

// FranchiseID returns the franchise the claim belongs to.
func (i *Invoice) FranchiseID() kernel.UUID {
	return i.franchiseID
}

// PaidAmount returns the claimed amount.
func (i *Invoice) PaidAmount() decimal.Decimal {
	return i.paidAmount
}

// IsApproved reports whether the claim has been approved.
func (i *Invoice) IsApproved() bool {
	return i.approved
}

// ApprovedAt returns when the claim was approved, nil while unapproved.
func (i *Invoice) ApprovedAt() *time.Time {
	return i.approvedAt
}

// ApprovedBy returns who approved the claim, nil while unapproved.
func (i *Invoice) ApprovedBy() *kernel.UUID {
	return i.approvedBy
}

// CreatedAt returns when the claim was raised.
func (i *Invoice) CreatedAt() time.Time {
	return i.createdAt
}

// Approve marks the invoice approved by the given actor. Approval is
// idempotent: re-approving an approved invoice changes nothing, so the paid
// amount can never be deducted twice and approvedAt never moves.
func (i *Invoice) Approve(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if i.approved {
		return nil
	}

	now := time.Now().UTC()
	i.approved = true
	i.approvedAt = &now
	i.approvedBy = &actorID
	return nil
}

// PaymentLog is the historical record of a payment event from the logistics
// operator to a franchise. It is informational only and deliberately kept
// apart from Invoice: the reconciliation balance ignores it.
type PaymentLog struct {
	ID          kernel.UUID
	FranchiseID kernel.UUID
	Amount      decimal.Decimal
	Note        string
	PaidAt      time.Time
}
