// Package product defines the items a vending machine sells.
package product

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrUnknownName is returned by ParseName for text that names no product.
	ErrUnknownName = errors.New("unknown product name")

	// ErrNegativePrice is returned by NewChecked for a price below zero.
	ErrNegativePrice = errors.New("product price cannot be negative")
)

// Name identifies a sellable item. The declaration order defines iteration order.
type Name uint8

const (
	Water Name = iota + 1
	Juice
	Soda
)

var names = [...]Name{Water, Juice, Soda}

var titles = map[Name]string{
	Water: "Water",
	Juice: "Juice",
	Soda:  "Soda",
}

// Names returns every known product name in declaration order.
func Names() []Name {
	out := make([]Name, len(names))
	copy(out, names[:])
	return out
}

// Valid reports whether n is a declared product name.
func (n Name) Valid() bool {
	_, ok := titles[n]
	return ok
}

func (n Name) String() string {
	if s, ok := titles[n]; ok {
		return s
	}
	return fmt.Sprintf("Name(%d)", uint8(n))
}

// ParseName resolves a product name case-insensitively ("water", "WATER" and "Water" are equal).
func ParseName(s string) (Name, error) {
	title := cases.Title(language.English).String(strings.TrimSpace(s))
	for n, t := range titles {
		if t == title {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownName, s)
}

// Product is an immutable sellable item. Price is in the smallest currency unit.
// Inventories identify products by name only; the price is metadata.
type Product struct {
	name  Name
	price int
}

// New returns a product. It panics on a negative price; use NewChecked for untrusted input.
func New(name Name, price int) Product {
	p, err := NewChecked(name, price)
	if err != nil {
		panic(err)
	}
	return p
}

// NewChecked returns a product or ErrNegativePrice.
func NewChecked(name Name, price int) (Product, error) {
	if price < 0 {
		return Product{}, fmt.Errorf("%w: %s costs %d", ErrNegativePrice, name, price)
	}
	return Product{name: name, price: price}, nil
}

func (p Product) Name() Name { return p.name }

func (p Product) Price() int { return p.price }

func (p Product) String() string {
	return fmt.Sprintf("%s@%d", p.name, p.price)
}
