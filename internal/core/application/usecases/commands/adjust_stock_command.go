package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrAdjustStockCommandIsNotConstructed = errors.New(
	"AdjustStockCommand must be created via NewAdjustStockCommand constructor",
)

// AdjustStockCommand overwrites the quantity of an owner's stock record with
// a manual correction, for example after a physical count.
type AdjustStockCommand struct { //nolint:recvcheck //using for validation
	owner       kernel.OwnerRef
	productID   kernel.UUID
	newQuantity int
	actorID     kernel.UUID

	guard kernel.ConstructorGuard
}

// NewAdjustStockCommand creates a stock correction command.
func NewAdjustStockCommand(
	owner kernel.OwnerRef, productID kernel.UUID, newQuantity int, actorID kernel.UUID,
) (AdjustStockCommand, error) {
	if err := errors.Join(
		owner.Validate(),
		productID.Validate(),
		actorID.Validate(),
	); err != nil {
		return AdjustStockCommand{}, err
	}
	if newQuantity < 0 {
		return AdjustStockCommand{}, errs.NewValueIsOutOfRangeError("newQuantity", newQuantity, 0, int(^uint(0)>>1))
	}

	return AdjustStockCommand{
		owner:       owner,
		productID:   productID,
		newQuantity: newQuantity,
		actorID:     actorID,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdjustStockCommand) Validate() error {
	return c.guard.Validate(ErrAdjustStockCommandIsNotConstructed)
}

// Owner returns the inventory-holding entity.
func (c AdjustStockCommand) Owner() kernel.OwnerRef {
	return c.owner
}

// ProductID returns the product whose record is corrected.
func (c AdjustStockCommand) ProductID() kernel.UUID {
	return c.productID
}

// NewQuantity returns the counted quantity to set.
func (c AdjustStockCommand) NewQuantity() int {
	return c.newQuantity
}

// ActorID returns who performed the correction.
func (c AdjustStockCommand) ActorID() kernel.UUID {
	return c.actorID
}
