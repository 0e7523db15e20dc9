package vending

import (
	"github.com/dmitrymomot/vendkit/pkg/money"
	"github.com/dmitrymomot/vendkit/pkg/product"
)

// Selecting is the idle phase awaiting a product selection.
type Selecting struct {
	machine
}

// Select starts a purchase of name.
//
// On success s is consumed and the returned Payment starts with no coins inserted.
// On failure s stays usable and is also available as the error's Machine field.
func (s *Selecting) Select(name product.Name) (*Payment, error) {
	entry, ok := s.live().products[name]
	if !ok {
		return nil, &UnknownProductError{Machine: s, Name: name}
	}
	if entry.Count == 0 {
		return nil, &OutOfStockError{Machine: s, Name: name}
	}

	return &Payment{
		machine: machine{inv: s.consume()},
		product: entry.Product,
	}, nil
}

// Purchase is the outcome of a successful Buy.
type Purchase struct {
	Machine *Selecting
	Product product.Product
	// Change is empty when the exact price was paid.
	Change money.Money
}

// HasChange reports whether any coins were paid out.
func (p Purchase) HasChange() bool {
	return !p.Change.IsEmpty()
}
