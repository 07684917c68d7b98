package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
)

// RecordPaymentCommandHandler appends a payment log entry.
type RecordPaymentCommandHandler struct {
	uowFactory InvoiceUoWFactory
}

// NewRecordPaymentCommandHandler creates a handler for payment logging.
func NewRecordPaymentCommandHandler(uowFactory InvoiceUoWFactory) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle persists the payment log entry.
func (h *RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (invoice.PaymentLog, error) {
	if err := cmd.Validate(); err != nil {
		return invoice.PaymentLog{}, err
	}

	log := invoice.PaymentLog{
		ID:          kernel.NewUUID(),
		FranchiseID: cmd.FranchiseID(),
		Amount:      cmd.Amount(),
		Note:        cmd.Note(),
		PaidAt:      cmd.PaidAt(),
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return invoice.PaymentLog{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.InvoiceRepository().AddPaymentLog(ctx, log); err != nil {
		return invoice.PaymentLog{}, err
	}

	if err := uow.Commit(ctx); err != nil {
		return invoice.PaymentLog{}, err
	}

	return log, nil
}
