package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a manual request to move an order to a
// new canonical status, e.g. from back-office tooling or a rider app.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	newStatus order.Status
	actorID   kernel.UUID
	comment   string

	guard kernel.ConstructorGuard
}

// NewTransitionOrderCommand creates a status-change command. The target
// status must be part of the canonical vocabulary; free-form strings are
// parsed at the boundary before a command ever exists.
func NewTransitionOrderCommand(
	orderID kernel.UUID, newStatus order.Status, actorID kernel.UUID, comment string,
) (TransitionOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		newStatus.Validate(),
		actorID.Validate(),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID:   orderID,
		newStatus: newStatus,
		actorID:   actorID,
		comment:   comment,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the target order's identifier.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the requested canonical status.
func (c TransitionOrderCommand) NewStatus() order.Status {
	return c.newStatus
}

// ActorID returns who requested the change.
func (c TransitionOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Comment returns the optional operator note logged with the transition.
func (c TransitionOrderCommand) Comment() string {
	return c.comment
}
