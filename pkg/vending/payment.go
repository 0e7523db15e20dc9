package vending

import (
	"fmt"

	"github.com/dmitrymomot/vendkit/pkg/money"
	"github.com/dmitrymomot/vendkit/pkg/product"
)

// Payment is the phase in which coins are inserted for the selected product.
type Payment struct {
	machine
	product  product.Product
	inserted money.Money
}

// Product returns the selected product.
func (p *Payment) Product() product.Product {
	p.live()
	return p.product
}

// Inserted returns a copy of the coins inserted so far.
func (p *Payment) Inserted() money.Money {
	p.live()
	return money.New(p.inserted.Coins()...)
}

// Paid returns the total value inserted so far.
func (p *Payment) Paid() int {
	p.live()
	return p.inserted.Sum()
}

// Due returns how much is still missing to cover the price, never below zero.
func (p *Payment) Due() int {
	if due := p.Product().Price() - p.inserted.Sum(); due > 0 {
		return due
	}
	return 0
}

// InsertCoin adds a coin to the transaction. There is no upper bound on the amount.
// It panics on an invalid denomination.
func (p *Payment) InsertCoin(c money.Coin) {
	p.live()
	mustCoin(c)
	p.inserted.Add(c)
}

// InsertCoins adds coins to the transaction in order.
func (p *Payment) InsertCoins(coins ...money.Coin) {
	for _, c := range coins {
		p.InsertCoin(c)
	}
}

// Cancel abandons the purchase. The inserted coins are handed back, never
// absorbed, so the inventories are unchanged.
func (p *Payment) Cancel() *Selecting {
	inv := p.consume()
	p.inserted = money.Money{}
	return &Selecting{machine{inv: inv}}
}

// Buy completes the purchase.
//
// If the inserted coins do not cover the price, Buy returns an
// InsufficientPaymentError and p stays usable with its coins intact.
//
// Otherwise p is consumed and the inserted coins join the coin inventory.
// The change is then taken from the updated inventory. When that fails Buy
// returns a NoChangeError: the coins stay absorbed and the product is kept.
func (p *Payment) Buy() (Purchase, error) {
	inv := p.live()
	paid := p.inserted.Sum()
	price := p.product.Price()

	if paid < price {
		return Purchase{}, &InsufficientPaymentError{
			Machine:   p,
			Name:      p.product.Name(),
			Shortfall: price - paid,
		}
	}

	p.consume()
	sold := p.product
	inv.coins.Merge(p.inserted)
	p.inserted = money.Money{}
	next := &Selecting{machine{inv: inv}}

	due := paid - price
	if due == 0 {
		inv.takeOff(sold.Name())
		return Purchase{Machine: next, Product: sold}, nil
	}

	change, err := money.MakeChange(inv.coins, due)
	if err != nil {
		return Purchase{}, &NoChangeError{Machine: next, ChangeDue: due, cause: err}
	}
	if err := inv.coins.Deduct(change); err != nil {
		// MakeChange only picks coins that are in stock.
		panic(fmt.Errorf("vending: change %s exceeds coin stock: %w", change, err))
	}
	inv.takeOff(sold.Name())

	return Purchase{Machine: next, Product: sold, Change: change}, nil
}
