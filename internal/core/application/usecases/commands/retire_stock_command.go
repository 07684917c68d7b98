package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
)

var ErrRetireStockCommandIsNotConstructed = errors.New(
	"RetireStockCommand must be created via NewRetireStockCommand constructor",
)

// RetireStockCommand ends the life of a stock record. The record stays in
// storage for its audit trail; its quantity is forced to zero.
type RetireStockCommand struct { //nolint:recvcheck //using for validation
	owner     kernel.OwnerRef
	productID kernel.UUID
	actorID   kernel.UUID

	guard kernel.ConstructorGuard
}

// NewRetireStockCommand creates a stock retirement command.
func NewRetireStockCommand(
	owner kernel.OwnerRef, productID kernel.UUID, actorID kernel.UUID,
) (RetireStockCommand, error) {
	if err := errors.Join(
		owner.Validate(),
		productID.Validate(),
		actorID.Validate(),
	); err != nil {
		return RetireStockCommand{}, err
	}

	return RetireStockCommand{
		owner:     owner,
		productID: productID,
		actorID:   actorID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RetireStockCommand) Validate() error {
	return c.guard.Validate(ErrRetireStockCommandIsNotConstructed)
}

// Owner returns the inventory-holding entity.
func (c RetireStockCommand) Owner() kernel.OwnerRef {
	return c.owner
}

// ProductID returns the product whose record is retired.
func (c RetireStockCommand) ProductID() kernel.UUID {
	return c.productID
}

// ActorID returns who performed the retirement.
func (c RetireStockCommand) ActorID() kernel.UUID {
	return c.actorID
}
