// Package money models the coins a vending machine accepts and pays out.
//
// It provides three building blocks:
//
//   - Coin, a fixed set of denominations {1, 2, 5, 10, 20, 50} ordered by face value;
//   - Money, an ordered sequence of coins such as the coins inserted during one purchase;
//   - Stock, the machine's coin inventory keyed by denomination.
//
// On top of them MakeChange implements greedy change-making against a limited
// Stock, and FromAmount decomposes an amount over an unlimited pool.
//
// # Change-making
//
// MakeChange always takes the largest in-stock denomination that does not exceed
// the remaining amount and never reconsiders a choice. It is therefore not
// optimal: it can report ErrNoChange for amounts an exhaustive search would pay
// out. Callers that need exact-change guarantees must implement their own search.
//
//	stock := money.Stock{money.One: 3, money.Two: 2, money.Ten: 1}
//	change, err := money.MakeChange(stock, 4)
//	// change.Values() == []int{2, 2}
//
// MakeChange never mutates its input. Use Stock.Deduct to remove the returned
// coins once the payout is committed.
package money
