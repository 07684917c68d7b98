package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	ErrDispatchOrderCommandIsNotConstructed = errors.New(
		"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
	)

	// ErrNoCarrierSelected is returned when dispatch is requested before a
	// logistics provider was chosen for the order.
	ErrNoCarrierSelected = errors.New("order has no carrier selected")
)

// DispatchOrderCommand represents a request to hand an order over to its
// selected logistics provider.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewDispatchOrderCommand creates a dispatch command.
func NewDispatchOrderCommand(orderID, actorID kernel.UUID) (DispatchOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return DispatchOrderCommand{}, err
	}

	return DispatchOrderCommand{
		orderID: orderID,
		actorID: actorID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

// OrderID returns the order to dispatch.
func (c DispatchOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns who triggered the dispatch.
func (c DispatchOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}
