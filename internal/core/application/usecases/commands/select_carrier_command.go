package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

var ErrSelectCarrierCommandIsNotConstructed = errors.New(
	"SelectCarrierCommand must be created via NewSelectCarrierCommand constructor",
)

// SelectCarrierCommand represents a request to change which logistics
// provider will move an order. Carrier selection carries a status coupling
// (see order.SelectCarrier), which the aggregate evaluates before any status
// write.
type SelectCarrierCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	carrier order.Carrier
	actorID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewSelectCarrierCommand creates a carrier-selection command.
func NewSelectCarrierCommand(
	orderID kernel.UUID, carrier order.Carrier, actorID kernel.UUID,
) (SelectCarrierCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		carrier.Validate(),
		actorID.Validate(),
	); err != nil {
		return SelectCarrierCommand{}, err
	}

	return SelectCarrierCommand{
		orderID: orderID,
		carrier: carrier,
		actorID: actorID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectCarrierCommand) Validate() error {
	return c.guard.Validate(ErrSelectCarrierCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c SelectCarrierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Carrier returns the selected logistics provider.
func (c SelectCarrierCommand) Carrier() order.Carrier {
	return c.carrier
}

// ActorID returns who made the selection.
func (c SelectCarrierCommand) ActorID() kernel.UUID {
	return c.actorID
}
