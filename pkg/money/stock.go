package money

import (
	"fmt"
	"slices"
)

// Stock is a coin inventory keyed by denomination.
// An absent key means the denomination was never stocked; a zero count means it is depleted.
type Stock map[Coin]int

// CoinCount is a single Stock entry.
type CoinCount struct {
	Coin  Coin
	Count int
}

// Add increments the count of c by one, registering it at 1 when absent.
func (s Stock) Add(c Coin) {
	s[c]++
}

// Merge adds every coin in m.
func (s Stock) Merge(m Money) {
	for _, c := range m.coins {
		s[c]++
	}
}

// Count returns the number of c coins available.
func (s Stock) Count(c Coin) int {
	return s[c]
}

// Has reports whether c has ever been stocked, even if currently depleted.
func (s Stock) Has(c Coin) bool {
	_, ok := s[c]
	return ok
}

// Deduct removes the coins in m. It fails without modifying s
// when any denomination would go negative.
func (s Stock) Deduct(m Money) error {
	need := make(map[Coin]int, len(m.coins))
	for _, c := range m.coins {
		need[c]++
	}
	for c, n := range need {
		if s[c] < n {
			return fmt.Errorf("%w: need %d of %s, have %d", ErrInsufficientCoins, n, c, s[c])
		}
	}
	for c, n := range need {
		s[c] -= n
	}
	return nil
}

// Clone returns an independent copy.
func (s Stock) Clone() Stock {
	out := make(Stock, len(s))
	for c, n := range s {
		out[c] = n
	}
	return out
}

// Total returns the combined face value of every coin in stock.
func (s Stock) Total() int {
	total := 0
	for c, n := range s {
		total += c.Value() * n
	}
	return total
}

// Entries returns the stock ordered by ascending denomination.
func (s Stock) Entries() []CoinCount {
	keys := make([]Coin, 0, len(s))
	for c := range s {
		keys = append(keys, c)
	}
	slices.Sort(keys)

	out := make([]CoinCount, 0, len(keys))
	for _, c := range keys {
		out = append(out, CoinCount{Coin: c, Count: s[c]})
	}
	return out
}
