package vending

import (
	"fmt"

	"github.com/dmitrymomot/vendkit/pkg/money"
	"github.com/dmitrymomot/vendkit/pkg/product"
)

// Provisioning is the initial phase in which the machine is stocked.
type Provisioning struct {
	machine
}

// New returns an empty machine in the provisioning phase.
func New() *Provisioning {
	return &Provisioning{machine{inv: newInventory()}}
}

// AddProduct stocks one item of p. Products are keyed by name;
// the price registered first for a name is kept.
func (p *Provisioning) AddProduct(item product.Product) *Provisioning {
	p.live().addProduct(item)
	return p
}

// AddProducts stocks one item per element of items.
func (p *Provisioning) AddProducts(items ...product.Product) *Provisioning {
	inv := p.live()
	for _, item := range items {
		inv.addProduct(item)
	}
	return p
}

// AddCoin stocks one coin. It panics on an invalid denomination.
func (p *Provisioning) AddCoin(c money.Coin) *Provisioning {
	mustCoin(c)
	p.live().coins.Add(c)
	return p
}

// AddCoins stocks every coin in coins.
func (p *Provisioning) AddCoins(coins ...money.Coin) *Provisioning {
	for _, c := range coins {
		p.AddCoin(c)
	}
	return p
}

// AddCoinCount stocks n coins of denomination c. A zero n still registers
// the denomination, so it is listed as depleted rather than absent.
// It panics on an invalid denomination or a negative n.
func (p *Provisioning) AddCoinCount(c money.Coin, n int) *Provisioning {
	mustCoin(c)
	if n < 0 {
		panic(fmt.Errorf("vending: negative count %d for coin %s", n, c))
	}
	p.live().coins[c] += n
	return p
}

// Start ends provisioning. The inventories carry over unchanged.
func (p *Provisioning) Start() *Selecting {
	return &Selecting{machine{inv: p.consume()}}
}
