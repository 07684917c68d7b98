// Package product holds the catalog entry entity. Products carry an immutable
// identity and a display name; stock quantities live in the inventory model.
package product

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Product is a catalog entry. Identity is immutable once created; quantities
// of a product held by an owner are tracked by inventory records, not here.
type Product struct {
	id   kernel.UUID
	name string

	guard kernel.ConstructorGuard
}

// ErrProductIsNotConstructed is returned when a Product was not created via NewProduct.
var ErrProductIsNotConstructed = errs.NewValueIsRequiredError("Product must be created via NewProduct constructor")

// NewProduct creates a catalog entry with a validated identifier and a
// non-empty name.
func NewProduct(id kernel.UUID, name string) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Product{
		id:    id,
		name:  name,
		guard: kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the product was created through NewProduct.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product's display name.
func (p *Product) Name() string {
	return p.name
}

// IsEqual compares two products by identifier.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}
