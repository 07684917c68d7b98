package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler applies a manual status change and its
// inventory side effect. The order row is locked for the duration of the
// transaction, serializing concurrent transitions (manual or webhook) on the
// same order.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewTransitionOrderCommandHandler creates a handler for manual status changes.
func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change. When the transition enters the
// cancelled/returned family from outside it, the stock behind every line is
// credited back in the same transaction.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	restock, err := o.Transition(cmd.NewStatus(), cmd.ActorID(), cmd.Comment())
	if err != nil {
		return nil, err
	}

	if restock {
		if err = creditOrderLines(ctx, uow.InventoryRepository(), o, cmd.ActorID()); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
