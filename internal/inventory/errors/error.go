// Package errors provides custom error types for inventory operations.
package errors

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateID is returned when a product is added with an id already in the store.
	ErrDuplicateID      = errors.New("product id already exists")
	ErrInvalidID        = errors.New("product id cannot be negative")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrNegativePrice    = errors.New("price cannot be negative")
)
