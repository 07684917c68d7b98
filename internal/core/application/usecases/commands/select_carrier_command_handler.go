package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// SelectCarrierCommandHandler changes an order's logistics provider and
// applies the status coupling owned by the aggregate.
type SelectCarrierCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSelectCarrierCommandHandler creates a handler for carrier selection.
func NewSelectCarrierCommandHandler(uowFactory OrderUoWFactory) SelectCarrierCommandHandler {
	return SelectCarrierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the carrier selection.
func (h *SelectCarrierCommandHandler) Handle(ctx context.Context, cmd SelectCarrierCommand) (*order.Order, error) {
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

	if err = o.SelectCarrier(cmd.Carrier(), cmd.ActorID()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
