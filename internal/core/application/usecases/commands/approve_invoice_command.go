package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrApproveInvoiceCommandIsNotConstructed = errors.New(
	"ApproveInvoiceCommand must be created via NewApproveInvoiceCommand constructor",
)

// ApproveInvoiceCommand approves a payment claim, making its amount a
// permanent deduction in the franchise's COD balance.
type ApproveInvoiceCommand struct { //nolint:recvcheck //using for validation
	invoiceID kernel.UUID
	actorID   kernel.UUID

	guard kernel.ConstructorGuard
}

// NewApproveInvoiceCommand creates an invoice approval command.
func NewApproveInvoiceCommand(invoiceID, actorID kernel.UUID) (ApproveInvoiceCommand, error) {
	if err := errors.Join(
		invoiceID.Validate(),
		actorID.Validate(),
	); err != nil {
		return ApproveInvoiceCommand{}, err
	}

	return ApproveInvoiceCommand{
		invoiceID: invoiceID,
		actorID:   actorID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrApproveInvoiceCommandIsNotConstructed)
}

// InvoiceID returns the claim being approved.
func (c ApproveInvoiceCommand) InvoiceID() kernel.UUID {
	return c.invoiceID
}

// ActorID returns who approved the claim.
func (c ApproveInvoiceCommand) ActorID() kernel.UUID {
	return c.actorID
}
