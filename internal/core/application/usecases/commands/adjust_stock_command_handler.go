package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
)

// AdjustStockCommandHandler applies a manual quantity correction under a row
// lock. A correction to the current quantity is a no-op and leaves no audit
// entry.
type AdjustStockCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewAdjustStockCommandHandler creates a handler for stock corrections.
func NewAdjustStockCommandHandler(uowFactory InventoryUoWFactory) AdjustStockCommandHandler {
	return AdjustStockCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the correction and returns the resulting record.
func (h *AdjustStockCommandHandler) Handle(ctx context.Context, cmd AdjustStockCommand) (*inventory.Record, error) {
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

	inventoryRepo := uow.InventoryRepository()

	record, err := inventoryRepo.GetForUpdate(ctx, cmd.Owner(), cmd.ProductID())
	if err != nil {
		return nil, err
	}

	if err = record.Adjust(cmd.NewQuantity(), cmd.ActorID()); err != nil {
		return nil, err
	}

	if err = inventoryRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
