package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"
)

var ErrAddStockCommandIsNotConstructed = errors.New(
	"AddStockCommand must be created via NewAddStockCommand constructor",
)

// AddStockCommand adds quantity to an owner's stock pool for one product.
// When no record exists yet for the (owner, product) pair one is created;
// otherwise the existing record is credited.
type AddStockCommand struct { //nolint:recvcheck //using for validation
	owner    kernel.OwnerRef
	product  *product.Product
	status   inventory.StockStatus
	quantity int
	actorID  kernel.UUID

	guard kernel.ConstructorGuard
}

// NewAddStockCommand creates a stock addition command.
func NewAddStockCommand(
	owner kernel.OwnerRef,
	productID kernel.UUID,
	productName string,
	status inventory.StockStatus,
	quantity int,
	actorID kernel.UUID,
) (AddStockCommand, error) {
	if err := errors.Join(
		owner.Validate(),
		status.Validate(),
		actorID.Validate(),
	); err != nil {
		return AddStockCommand{}, err
	}
	catalogEntry, err := product.NewProduct(productID, productName)
	if err != nil {
		return AddStockCommand{}, err
	}
	if quantity <= 0 {
		return AddStockCommand{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, int(^uint(0)>>1))
	}

	return AddStockCommand{
		owner:    owner,
		product:  catalogEntry,
		status:   status,
		quantity: quantity,
		actorID:  actorID,
		guard:    kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddStockCommand) Validate() error {
	return c.guard.Validate(ErrAddStockCommandIsNotConstructed)
}

// Owner returns the inventory-holding entity.
func (c AddStockCommand) Owner() kernel.OwnerRef {
	return c.owner
}

// ProductID returns the product being stocked.
func (c AddStockCommand) ProductID() kernel.UUID {
	return c.product.ID()
}

// ProductName returns the denormalized product name for new records.
func (c AddStockCommand) ProductName() string {
	return c.product.Name()
}

// Status returns the stock condition tag.
func (c AddStockCommand) Status() inventory.StockStatus {
	return c.status
}

// Quantity returns the number of units to add.
func (c AddStockCommand) Quantity() int {
	return c.quantity
}

// ActorID returns who performed the addition.
func (c AddStockCommand) ActorID() kernel.UUID {
	return c.actorID
}
