package vending

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/vendkit/pkg/money"
	"github.com/dmitrymomot/vendkit/pkg/product"
)

// ProductCount is a product inventory entry.
type ProductCount struct {
	Product product.Product
	Count   int
}

// inventory is the state shared by every phase. Exactly one live handle points to it.
type inventory struct {
	products map[product.Name]ProductCount
	coins    money.Stock
}

func newInventory() *inventory {
	return &inventory{
		products: make(map[product.Name]ProductCount),
		coins:    make(money.Stock),
	}
}

func (inv *inventory) addProduct(p product.Product) {
	entry, ok := inv.products[p.Name()]
	if !ok {
		entry = ProductCount{Product: p}
	}
	entry.Count++
	inv.products[p.Name()] = entry
}

func (inv *inventory) takeOff(name product.Name) {
	entry, ok := inv.products[name]
	if !ok || entry.Count == 0 {
		return
	}
	entry.Count--
	inv.products[name] = entry
}

// machine carries the inventory pointer and the read-only accessors common to all phases.
type machine struct {
	inv *inventory
}

func (m *machine) live() *inventory {
	if m == nil || m.inv == nil {
		panic(ErrConsumed)
	}
	return m.inv
}

// consume hands the inventory over to the next phase and invalidates this handle.
func (m *machine) consume() *inventory {
	inv := m.live()
	m.inv = nil
	return inv
}

// Products returns the product inventory ordered by product name.
func (m *machine) Products() []ProductCount {
	inv := m.live()
	names := make([]product.Name, 0, len(inv.products))
	for n := range inv.products {
		names = append(names, n)
	}
	slices.Sort(names)

	out := make([]ProductCount, 0, len(names))
	for _, n := range names {
		out = append(out, inv.products[n])
	}
	return out
}

// ProductCount returns the stock of name and whether it was ever stocked.
func (m *machine) ProductCount(name product.Name) (int, bool) {
	entry, ok := m.live().products[name]
	return entry.Count, ok
}

// Coins returns the coin inventory ordered by denomination.
func (m *machine) Coins() []money.CoinCount {
	return m.live().coins.Entries()
}

// CoinStock returns a copy of the coin inventory.
func (m *machine) CoinStock() money.Stock {
	return m.live().coins.Clone()
}

func mustCoin(c money.Coin) {
	if !c.Valid() {
		panic(fmt.Errorf("%w: %d", money.ErrUnknownCoin, int(c)))
	}
}
