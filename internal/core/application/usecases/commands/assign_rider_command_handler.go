package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// AssignRiderCommandHandler puts an order in a rider's hands. Assignment
// moves the order out for delivery; reassigning while already out replaces
// the rider in place without another status log entry.
type AssignRiderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAssignRiderCommandHandler creates a handler for rider assignments.
func NewAssignRiderCommandHandler(uowFactory OrderUoWFactory) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rider assignment.
func (h *AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) (*order.Order, error) {
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

	if err = o.AssignRider(cmd.RiderID(), cmd.ActorID()); err != nil {
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
