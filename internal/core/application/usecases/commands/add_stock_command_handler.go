package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// AddStockCommandHandler upserts stock: the first addition for an
// (owner, product) pair creates the record, later additions credit it. The
// lookup and the write share one locked transaction, so two concurrent
// additions cannot both take the creation path.
type AddStockCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewAddStockCommandHandler creates a handler for stock additions.
func NewAddStockCommandHandler(uowFactory InventoryUoWFactory) AddStockCommandHandler {
	return AddStockCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the stock addition and returns the resulting record.
func (h *AddStockCommandHandler) Handle(ctx context.Context, cmd AddStockCommand) (*inventory.Record, error) {
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
	switch {
	case err == nil:
		if err = record.Credit(cmd.Quantity(), cmd.ActorID(), inventory.ActionAdd); err != nil {
			return nil, err
		}
		if err = inventoryRepo.Update(ctx, record); err != nil {
			return nil, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		record, err = inventory.NewRecord(
			kernel.NewUUID(),
			cmd.Owner(),
			cmd.ProductID(),
			cmd.ProductName(),
			cmd.Status(),
			cmd.Quantity(),
			cmd.ActorID(),
		)
		if err != nil {
			return nil, err
		}
		if err = inventoryRepo.Add(ctx, record); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
