package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vendkit/pkg/catalog"
	"github.com/dmitrymomot/vendkit/pkg/money"
	"github.com/dmitrymomot/vendkit/pkg/product"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	stock, err := catalog.LoadFile(context.Background(), "testdata/stock.yaml")
	require.NoError(t, err)

	require.Len(t, stock.Items, 3)
	assert.Equal(t, product.New(product.Water, 10), stock.Items[0].Product)
	assert.Equal(t, 3, stock.Items[0].Count)
	assert.Equal(t, product.New(product.Juice, 7), stock.Items[1].Product)
	assert.Equal(t, product.New(product.Soda, 11), stock.Items[2].Product)

	assert.Equal(t, 3, stock.Coins.Count(money.One))
	assert.Equal(t, 2, stock.Coins.Count(money.Two))
	assert.Equal(t, 0, stock.Coins.Count(money.Ten))
	assert.Equal(t, 3+4+5+50, stock.Coins.Total())

	m := stock.Start()
	count, ok := m.ProductCount(product.Water)
	assert.True(t, ok)
	assert.Equal(t, 3, count)
	assert.Equal(t, 3+4+5+50, m.CoinStock().Total())
	assert.True(t, m.CoinStock().Has(money.Ten))
	assert.Equal(t, 0, m.CoinStock().Count(money.Ten))
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	_, err := catalog.LoadFile(context.Background(), "testdata/nope.yaml")
	assert.ErrorIs(t, err, catalog.ErrReadStock)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"empty document", "", nil},
		{"products only", "products:\n  - {name: juice, price: 3, count: 1}\n", nil},
		{"malformed", "products: [", catalog.ErrParseStock},
		{"unknown key", "snacks: []\n", catalog.ErrParseStock},
		{"unknown product", "products:\n  - {name: coffee, price: 3, count: 1}\n", catalog.ErrInvalidStock},
		{"negative price", "products:\n  - {name: water, price: -1, count: 1}\n", catalog.ErrInvalidStock},
		{"zero count", "products:\n  - {name: water, price: 1, count: 0}\n", catalog.ErrInvalidStock},
		{"conflicting prices", "products:\n  - {name: water, price: 1, count: 1}\n  - {name: water, price: 2, count: 1}\n", catalog.ErrInvalidStock},
		{"unknown coin", "coins:\n  3: 1\n", catalog.ErrInvalidStock},
		{"negative coin count", "coins:\n  5: -1\n", catalog.ErrInvalidStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stock, err := catalog.Parse(context.Background(), []byte(tt.doc))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, stock)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, stock)
		})
	}
}

func TestParseCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := catalog.Parse(ctx, []byte("products: []"))
	assert.ErrorIs(t, err, catalog.ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	m := catalog.Default().Start()
	products := m.Products()
	require.Len(t, products, 2)
	assert.Equal(t, product.New(product.Water, 10), products[0].Product)
	assert.Equal(t, product.New(product.Soda, 11), products[1].Product)

	coins := m.Coins()
	require.Len(t, coins, len(money.Coins()))
	for _, cc := range coins {
		assert.Equal(t, 1, cc.Count, cc.Coin.String())
	}
}
