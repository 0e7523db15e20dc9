package terminal

import (
	"time"

	"github.com/dmitrymomot/vendkit/pkg/money"
	"github.com/dmitrymomot/vendkit/pkg/product"
	"github.com/dmitrymomot/vendkit/pkg/vending"
)

// Session describes the transaction in progress.
type Session struct {
	ID        string
	Product   product.Product
	Inserted  money.Money
	Paid      int
	Due       int
	StartedAt time.Time
}

// Receipt is issued for a completed purchase.
type Receipt struct {
	SessionID string
	Product   product.Product
	Paid      int
	Change    money.Money
	At        time.Time
}

// Refund is issued for a cancelled transaction. Coins are the inserted coins handed back.
type Refund struct {
	SessionID string
	Product   product.Product
	Coins     money.Money
	At        time.Time
}

// Snapshot is a point-in-time view of the machine.
type Snapshot struct {
	Phase    Phase
	Products []vending.ProductCount
	Coins    []money.CoinCount
	// Session is nil outside the payment phase.
	Session *Session
}

// CoinTotal returns the value of the coin inventory.
func (s Snapshot) CoinTotal() int {
	total := 0
	for _, cc := range s.Coins {
		total += cc.Coin.Value() * cc.Count
	}
	return total
}
