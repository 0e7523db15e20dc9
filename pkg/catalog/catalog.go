// Package catalog loads the initial machine stock from YAML.
//
// A stock file lists products with their price and count, and coins by
// denomination:
//
//	products:
//	  - name: water
//	    price: 10
//	    count: 1
//	  - name: soda
//	    price: 11
//	    count: 1
//	coins:
//	  1: 1
//	  2: 1
//	  50: 1
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/vendkit/pkg/money"
	"github.com/dmitrymomot/vendkit/pkg/product"
	"github.com/dmitrymomot/vendkit/pkg/vending"
)

// Item is a product and how many of it to stock.
type Item struct {
	Product product.Product
	Count   int
}

// Stock is a validated initial inventory.
type Stock struct {
	Items []Item
	Coins money.Stock
}

type fileItem struct {
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
	Count int    `yaml:"count"`
}

type fileStock struct {
	Products []fileItem  `yaml:"products"`
	Coins    map[int]int `yaml:"coins"`
}

// Default returns the built-in stock: one Water at 10, one Soda at 11 and one coin of each denomination.
func Default() *Stock {
	coins := make(money.Stock)
	for _, c := range money.Coins() {
		coins.Add(c)
	}
	return &Stock{
		Items: []Item{
			{Product: product.New(product.Water, 10), Count: 1},
			{Product: product.New(product.Soda, 11), Count: 1},
		},
		Coins: coins,
	}
}

// LoadFile reads and parses the stock file at path.
func LoadFile(ctx context.Context, path string) (*Stock, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrCancelled, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadStock, err)
	}
	return Parse(ctx, data)
}

// Parse decodes and validates a YAML stock document. Unknown keys are rejected.
// An empty document yields an empty stock.
func Parse(ctx context.Context, data []byte) (*Stock, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrCancelled, err)
	}

	var raw fileStock
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrParseStock, err)
	}

	return raw.validate()
}

func (f fileStock) validate() (*Stock, error) {
	stock := &Stock{Coins: make(money.Stock)}
	index := make(map[product.Name]int)

	for i, entry := range f.Products {
		name, err := product.ParseName(entry.Name)
		if err != nil {
			return nil, errors.Join(ErrInvalidStock, fmt.Errorf("products[%d]: %w", i, err))
		}
		p, err := product.NewChecked(name, entry.Price)
		if err != nil {
			return nil, errors.Join(ErrInvalidStock, fmt.Errorf("products[%d]: %w", i, err))
		}
		if entry.Count < 1 {
			return nil, errors.Join(ErrInvalidStock, fmt.Errorf("products[%d]: count must be at least 1, got %d", i, entry.Count))
		}

		if at, ok := index[name]; ok {
			if stock.Items[at].Product.Price() != p.Price() {
				return nil, errors.Join(ErrInvalidStock, fmt.Errorf("products[%d]: %s listed with prices %d and %d",
					i, name, stock.Items[at].Product.Price(), p.Price()))
			}
			stock.Items[at].Count += entry.Count
			continue
		}
		index[name] = len(stock.Items)
		stock.Items = append(stock.Items, Item{Product: p, Count: entry.Count})
	}

	for value, count := range f.Coins {
		c, err := money.CoinOf(value)
		if err != nil {
			return nil, errors.Join(ErrInvalidStock, fmt.Errorf("coins: %w", err))
		}
		if count < 0 {
			return nil, errors.Join(ErrInvalidStock, fmt.Errorf("coins: negative count %d for %s", count, c))
		}
		stock.Coins[c] += count
	}

	return stock, nil
}

// Provision returns a machine in the provisioning phase holding this stock.
func (s *Stock) Provision() *vending.Provisioning {
	m := vending.New()
	for _, item := range s.Items {
		for range item.Count {
			m.AddProduct(item.Product)
		}
	}
	for _, cc := range s.Coins.Entries() {
		m.AddCoinCount(cc.Coin, cc.Count)
	}
	return m
}

// Start provisions a machine with this stock and starts it.
func (s *Stock) Start() *vending.Selecting {
	return s.Provision().Start()
}
