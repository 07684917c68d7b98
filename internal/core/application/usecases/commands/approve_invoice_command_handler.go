package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
)

// ApproveInvoiceCommandHandler marks a claim approved. Approval is
// idempotent at the aggregate level: re-approving changes nothing and keeps
// the original approval time.
type ApproveInvoiceCommandHandler struct {
	uowFactory InvoiceUoWFactory
}

// NewApproveInvoiceCommandHandler creates a handler for invoice approvals.
func NewApproveInvoiceCommandHandler(uowFactory InvoiceUoWFactory) ApproveInvoiceCommandHandler {
	return ApproveInvoiceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the approval and returns the approved invoice.
func (h *ApproveInvoiceCommandHandler) Handle(ctx context.Context, cmd ApproveInvoiceCommand) (*invoice.Invoice, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	invoiceRepo := uow.InvoiceRepository()

	inv, err := invoiceRepo.Get(ctx, cmd.InvoiceID())
	if err != nil {
		return nil, err
	}

	if err = inv.Approve(cmd.ActorID()); err != nil {
		return nil, err
	}

	if err = invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return inv, nil
}
