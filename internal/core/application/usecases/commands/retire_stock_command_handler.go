package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
)

// RetireStockCommandHandler zeroes a stock record under a row lock. Retiring
// an already-empty record is a no-op.
type RetireStockCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewRetireStockCommandHandler creates a handler for stock retirements.
func NewRetireStockCommandHandler(uowFactory InventoryUoWFactory) RetireStockCommandHandler {
	return RetireStockCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the retirement and returns the zeroed record.
func (h *RetireStockCommandHandler) Handle(ctx context.Context, cmd RetireStockCommand) (*inventory.Record, error) {
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

	if err = record.Retire(cmd.ActorID()); err != nil {
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
