package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrCreateInvoiceCommandIsNotConstructed = errors.New(
	"CreateInvoiceCommand must be created via NewCreateInvoiceCommand constructor",
)

// CreateInvoiceCommand raises an unapproved payment claim for a franchise.
type CreateInvoiceCommand struct { //nolint:recvcheck //using for validation
	franchiseID kernel.UUID
	paidAmount  decimal.Decimal

	guard kernel.ConstructorGuard
}

// NewCreateInvoiceCommand creates an invoice creation command.
func NewCreateInvoiceCommand(franchiseID kernel.UUID, paidAmount decimal.Decimal) (CreateInvoiceCommand, error) {
	if err := franchiseID.Validate(); err != nil {
		return CreateInvoiceCommand{}, err
	}
	if !paidAmount.IsPositive() {
		return CreateInvoiceCommand{}, errs.NewValueIsInvalidError("paidAmount")
	}

	return CreateInvoiceCommand{
		franchiseID: franchiseID,
		paidAmount:  paidAmount,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrCreateInvoiceCommandIsNotConstructed)
}

// FranchiseID returns the franchise the claim belongs to.
func (c CreateInvoiceCommand) FranchiseID() kernel.UUID {
	return c.franchiseID
}

// PaidAmount returns the claimed amount.
func (c CreateInvoiceCommand) PaidAmount() decimal.Decimal {
	return c.paidAmount
}
