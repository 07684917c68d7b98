package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)

	// ErrRoleCannotSellOwnerStock is returned when the acting role has no
	// capability over the targeted inventory pool.
	ErrRoleCannotSellOwnerStock = errors.New("role may not create orders against this owner's stock")
)

// CreateOrderCommand represents a request to create a new fulfillment order
// against the stock pool of a factory, distributor, or franchise.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	actorID        kernel.UUID
	actorRole      kernel.Role
	owner          kernel.OwnerRef
	customer       order.Customer
	lines          []order.Line
	paymentMethod  order.PaymentMethod
	totalAmount    decimal.Decimal
	prepaidAmount  decimal.Decimal
	deliveryCharge decimal.Decimal

	guard kernel.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order. The acting
// role must hold the capability to sell from the targeted owner's pool; the
// amount and line invariants themselves are enforced by the order aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	actorRole kernel.Role,
	owner kernel.OwnerRef,
	customer order.Customer,
	lines []order.Line,
	paymentMethod order.PaymentMethod,
	totalAmount decimal.Decimal,
	prepaidAmount decimal.Decimal,
	deliveryCharge decimal.Decimal,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		actorRole.Validate(),
		owner.Validate(),
		customer.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	if len(lines) == 0 {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return CreateOrderCommand{}, err
		}
	}
	if !actorRole.CanCreateOrderFor(owner.Kind()) {
		return CreateOrderCommand{}, ErrRoleCannotSellOwnerStock
	}

	return CreateOrderCommand{
		orderID:        orderID,
		actorID:        actorID,
		actorRole:      actorRole,
		owner:          owner,
		customer:       customer,
		lines:          lines,
		paymentMethod:  paymentMethod,
		totalAmount:    totalAmount,
		prepaidAmount:  prepaidAmount,
		deliveryCharge: deliveryCharge,
		guard:          kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the creating user's identifier.
func (c CreateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the creating user's role.
func (c CreateOrderCommand) ActorRole() kernel.Role {
	return c.actorRole
}

// Owner returns the inventory pool the order sells from.
func (c CreateOrderCommand) Owner() kernel.OwnerRef {
	return c.owner
}

// Customer returns the delivery contact details.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// Lines returns the order positions.
func (c CreateOrderCommand) Lines() []order.Line {
	return c.lines
}

// PaymentMethod returns how the customer settles the order.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// TotalAmount returns the gross order amount.
func (c CreateOrderCommand) TotalAmount() decimal.Decimal {
	return c.totalAmount
}

// PrepaidAmount returns the amount settled in advance.
func (c CreateOrderCommand) PrepaidAmount() decimal.Decimal {
	return c.prepaidAmount
}

// DeliveryCharge returns the delivery fee billed to the customer.
func (c CreateOrderCommand) DeliveryCharge() decimal.Decimal {
	return c.deliveryCharge
}
