package commands

import (
	"context"
	"sort"

	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// the stock behind every line is checked and debited, then the order is
// persisted, all inside one transaction. A shortfall on any line rolls the
// whole operation back, so there is never a partial debit.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
//
// Stock rows are locked in a deterministic product order so two concurrent
// multi-line orders over the same products cannot deadlock, and the
// row locks serialize the check-and-decrement per (owner, product) key.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	invRepo := uow.InventoryRepository()

	lines := make([]order.Line, len(cmd.Lines()))
	copy(lines, cmd.Lines())
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID.String() < lines[j].ProductID.String()
	})

	for _, line := range lines {
		record, err := invRepo.GetForUpdate(ctx, cmd.Owner(), line.ProductID)
		if err != nil {
			return nil, err
		}
		if err = record.Debit(line.Quantity, cmd.ActorID()); err != nil {
			return nil, err
		}
		if err = invRepo.Update(ctx, record); err != nil {
			return nil, err
		}
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Owner(),
		cmd.Customer(),
		cmd.Lines(),
		cmd.PaymentMethod(),
		cmd.TotalAmount(),
		cmd.PrepaidAmount(),
		cmd.DeliveryCharge(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}
