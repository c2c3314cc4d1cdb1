// Package store provides the product record and an interface for product storage operations.
package store

import (
	"iter"

	"github.com/shopspring/decimal"
)

// Kind tells a general product apart from an electronics product.
type Kind int

const (
	KindGeneral Kind = iota
	KindElectronics
)

func (k Kind) String() string {
	switch k {
	case KindGeneral:
		return "general"
	case KindElectronics:
		return "electronics"
	default:
		return "unknown"
	}
}

// Product represents a product record in the store.
// Warranty is only meaningful for KindElectronics.
type Product struct {
	ID       int
	Name     string
	Quantity int
	Price    decimal.Decimal
	Kind     Kind
	Warranty string
}

// ProductStore is an interface for product storage operations.
// Records keep their insertion order and ids are unique.
type ProductStore interface {
	// Add appends a product.
	// Returns ErrDuplicateID if the id is taken, or a validation error for negative id, quantity or price.
	Add(product Product) error

	// FindByID retrieves a copy of the product with the given id.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(id int) (*Product, error)

	// All returns the products in insertion order.
	// The sequence can be ranged over any number of times; it is empty if the store is empty.
	All() iter.Seq[Product]

	// Len returns the number of stored products.
	Len() int

	// UpdateQuantity sets the quantity of a product and returns the updated copy.
	// Returns ErrProductNotFound or ErrNegativeQuantity; the stored value is kept on error.
	UpdateQuantity(id int, quantity int) (*Product, error)

	// UpdatePrice sets the price of a product and returns the updated copy.
	// Returns ErrProductNotFound or ErrNegativePrice; the stored value is kept on error.
	UpdatePrice(id int, price decimal.Decimal) (*Product, error)

	// Remove deletes a product by its ID and returns it.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Remove(id int) (*Product, error)
}
