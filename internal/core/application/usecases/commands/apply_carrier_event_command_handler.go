package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
)

// CarrierEventResult reports what an inbound carrier event did to the order.
// Applied is false both for unrecognized raw statuses and for duplicate
// events that matched the order's current status.
type CarrierEventResult struct {
	Order   *order.Order
	Applied bool
}

// ApplyCarrierEventCommandHandler folds carrier webhook and polling events
// into the order lifecycle. Events are never rejected for their payload:
// a raw status the carrier adapter cannot map is recorded as a remark on the
// order so operators can audit the vocabulary drift.
type ApplyCarrierEventCommandHandler struct {
	uowFactory OrderUoWFactory
	carriers   CarrierResolver
}

// NewApplyCarrierEventCommandHandler creates a handler for carrier events.
func NewApplyCarrierEventCommandHandler(
	uowFactory OrderUoWFactory, carriers CarrierResolver,
) ApplyCarrierEventCommandHandler {
	return ApplyCarrierEventCommandHandler{
		uowFactory: uowFactory,
		carriers:   carriers,
	}
}

// Handle maps the raw status through the carrier's adapter and applies the
// resulting transition under a row lock. Restock side effects run in the same
// transaction, exactly as they do for manual transitions.
func (h *ApplyCarrierEventCommandHandler) Handle(
	ctx context.Context, cmd ApplyCarrierEventCommand,
) (CarrierEventResult, error) {
	if err := cmd.Validate(); err != nil {
		return CarrierEventResult{}, err
	}

	client, err := h.carriers.Resolve(cmd.Carrier())
	if err != nil {
		return CarrierEventResult{}, err
	}

	newStatus, recognized := client.MapStatus(cmd.RawStatus())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CarrierEventResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetByTrackingCode(ctx, cmd.TrackingCode())
	if err != nil {
		return CarrierEventResult{}, err
	}

	o, err = orderRepo.GetForUpdate(ctx, o.ID())
	if err != nil {
		return CarrierEventResult{}, err
	}

	if !recognized {
		o.AddRemark(fmt.Sprintf("unrecognized %s status %q", cmd.Carrier(), cmd.RawStatus()))

		if err = orderRepo.Update(ctx, o); err != nil {
			return CarrierEventResult{}, err
		}

		if err = uow.Commit(ctx); err != nil {
			return CarrierEventResult{}, err
		}

		return CarrierEventResult{Order: o, Applied: false}, nil
	}

	before := o.Status()
	comment := cmd.Comment()
	if comment == "" {
		comment = fmt.Sprintf("%s reported %q", cmd.Carrier(), cmd.RawStatus())
	}

	restock, err := o.Transition(newStatus, cmd.ActorID(), comment)
	if err != nil {
		return CarrierEventResult{}, err
	}

	if restock {
		if err = creditOrderLines(ctx, uow.InventoryRepository(), o, cmd.ActorID()); err != nil {
			return CarrierEventResult{}, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return CarrierEventResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CarrierEventResult{}, err
	}

	return CarrierEventResult{Order: o, Applied: o.Status() != before}, nil
}
