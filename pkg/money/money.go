package money

import "strings"

// Money is an ordered sequence of coins, e.g. the coins inserted during one purchase.
// The zero value is an empty sequence ready to use.
type Money struct {
	coins []Coin
}

// New returns Money holding coins in the given order.
func New(coins ...Coin) Money {
	m := Money{}
	m.Extend(coins...)
	return m
}

// FromAmount decomposes amount over an unlimited pool of every denomination,
// taking the largest coin that fits at each step.
// FromAmount(138) yields [50 50 20 10 5 2 1]. Non-positive amounts yield empty Money.
func FromAmount(amount int) Money {
	var m Money
	for amount > 0 {
		for _, c := range descending {
			if c.Value() <= amount {
				m.Add(c)
				amount -= c.Value()
				break
			}
		}
	}
	return m
}

// Add appends a coin.
func (m *Money) Add(c Coin) {
	m.coins = append(m.coins, c)
}

// Extend appends coins preserving their order.
func (m *Money) Extend(coins ...Coin) {
	m.coins = append(m.coins, coins...)
}

// Sum returns the total face value.
func (m Money) Sum() int {
	total := 0
	for _, c := range m.coins {
		total += c.Value()
	}
	return total
}

// Len returns the number of coins.
func (m Money) Len() int {
	return len(m.coins)
}

// IsEmpty reports whether m holds no coins.
func (m Money) IsEmpty() bool {
	return len(m.coins) == 0
}

// Coins returns a copy of the coins in insertion order.
func (m Money) Coins() []Coin {
	if len(m.coins) == 0 {
		return nil
	}
	out := make([]Coin, len(m.coins))
	copy(out, m.coins)
	return out
}

// Values returns the face values in insertion order.
func (m Money) Values() []int {
	out := make([]int, len(m.coins))
	for i, c := range m.coins {
		out[i] = c.Value()
	}
	return out
}

func (m Money) String() string {
	parts := make([]string, len(m.coins))
	for i, c := range m.coins {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
