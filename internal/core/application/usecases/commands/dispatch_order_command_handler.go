package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// DispatchOrderCommandHandler hands an order to its selected carrier and
// records the returned tracking code.
//
// The carrier call happens inside the order's transaction: the row lock keeps
// concurrent transitions away while the handover is in flight, and a failed
// or timed-out call rolls everything back, leaving the order in its
// pre-dispatch status with no tracking code.
type DispatchOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	carriers   CarrierResolver
}

// CarrierResolver looks up the outbound client for a carrier. Mirrors
// ports.CarrierResolver; declared here so handler tests can mock it narrowly.
type CarrierResolver interface {
	Resolve(c order.Carrier) (CarrierClient, error)
}

// CarrierClient is the slice of ports.CarrierClient the command handlers
// need: handing an order over and translating the carrier's native statuses.
type CarrierClient interface {
	Dispatch(ctx context.Context, o *order.Order) (string, error)
	MapStatus(raw string) (order.Status, bool)
}

// NewDispatchOrderCommandHandler creates a handler for carrier handovers.
func NewDispatchOrderCommandHandler(
	uowFactory OrderUoWFactory, carriers CarrierResolver,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		carriers:   carriers,
	}
}

// Handle processes the dispatch. DASH handovers move the order to SentToDash;
// third-party handovers move it to SentToCarrier (usually a no-op, since
// selecting a third-party carrier already forced that status).
func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) (*order.Order, error) {
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

	logistics := o.Logistics()
	if logistics == nil {
		return nil, ErrNoCarrierSelected
	}

	client, err := h.carriers.Resolve(*logistics)
	if err != nil {
		return nil, err
	}

	trackingCode, err := client.Dispatch(ctx, o)
	if err != nil {
		return nil, err
	}

	if err = o.SetTrackingCode(trackingCode); err != nil {
		return nil, err
	}

	target := order.SentToDash
	if logistics.IsThirdParty() {
		target = order.SentToCarrier
	}
	if _, err = o.Transition(target, cmd.ActorID(), "dispatched via "+logistics.String()); err != nil {
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
