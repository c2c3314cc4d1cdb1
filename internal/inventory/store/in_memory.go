package store

import (
	"iter"
	"slices"
	"sync"

	"github.com/abgdnv/stockmanager/internal/inventory/errors"
	"github.com/shopspring/decimal"
)

// inMemory implements ProductStore using an ordered slice.
type inMemory struct {
	mu       sync.RWMutex
	products []Product
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make([]Product, 0),
	}
}

// Add appends a product. Negative fields and taken ids are rejected.
func (s *inMemory) Add(product Product) error {
	switch {
	case product.ID < 0:
		return errors.ErrInvalidID
	case product.Quantity < 0:
		return errors.ErrNegativeQuantity
	case product.Price.IsNegative():
		return errors.ErrNegativePrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(product.ID) >= 0 {
		return errors.ErrDuplicateID
	}
	s.products = append(s.products, product)
	return nil
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(id int) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// All yields a snapshot taken when ranging starts, so callers may mutate the store inside the loop.
func (s *inMemory) All() iter.Seq[Product] {
	return func(yield func(Product) bool) {
		s.mu.RLock()
		snapshot := slices.Clone(s.products)
		s.mu.RUnlock()

		for _, p := range snapshot {
			if !yield(p) {
				return
			}
		}
	}
}

func (s *inMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// UpdateQuantity sets the stock quantity of a product.
func (s *inMemory) UpdateQuantity(id int, quantity int) (*Product, error) {
	return s.update(id, func(p *Product) error {
		if quantity < 0 {
			return errors.ErrNegativeQuantity
		}
		p.Quantity = quantity
		return nil
	})
}

// UpdatePrice sets the unit price of a product.
func (s *inMemory) UpdatePrice(id int, price decimal.Decimal) (*Product, error) {
	return s.update(id, func(p *Product) error {
		if price.IsNegative() {
			return errors.ErrNegativePrice
		}
		p.Price = price
		return nil
	})
}

// Remove deletes a product by its ID.
func (s *inMemory) Remove(id int) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	removed := s.products[i]
	s.products = slices.Delete(s.products, i, i+1)
	return &removed, nil
}

// update locates the product and applies mutate to it in place.
func (s *inMemory) update(id int, mutate func(p *Product) error) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	if err := mutate(&s.products[i]); err != nil {
		return nil, err
	}
	p := s.products[i]
	return &p, nil
}

// indexOf must be called with mu held.
func (s *inMemory) indexOf(id int) int {
	return slices.IndexFunc(s.products, func(p Product) bool {
		return p.ID == id
	})
}
