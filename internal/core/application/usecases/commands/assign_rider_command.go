package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand hands an order to a delivery rider for the in-house
// fleet's last mile.
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	riderID kernel.UUID
	actorID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewAssignRiderCommand creates a rider assignment command.
func NewAssignRiderCommand(orderID, riderID, actorID kernel.UUID) (AssignRiderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		riderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return AssignRiderCommand{}, err
	}

	return AssignRiderCommand{
		orderID: orderID,
		riderID: riderID,
		actorID: actorID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// OrderID returns the target order identifier.
func (c AssignRiderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the rider taking the order out.
func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// ActorID returns who performed the assignment.
func (c AssignRiderCommand) ActorID() kernel.UUID {
	return c.actorID
}
