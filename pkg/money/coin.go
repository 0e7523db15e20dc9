package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Coin is a coin denomination. Its value is the face value in the smallest currency unit.
type Coin int

const (
	One    Coin = 1
	Two    Coin = 2
	Five   Coin = 5
	Ten    Coin = 10
	Twenty Coin = 20
	Fifty  Coin = 50
)

var (
	ascending  = [...]Coin{One, Two, Five, Ten, Twenty, Fifty}
	descending = [...]Coin{Fifty, Twenty, Ten, Five, Two, One}
)

// Coins returns every accepted denomination in ascending order.
func Coins() []Coin {
	out := make([]Coin, len(ascending))
	copy(out, ascending[:])
	return out
}

// Descending returns every accepted denomination from the largest to the smallest.
func Descending() []Coin {
	out := make([]Coin, len(descending))
	copy(out, descending[:])
	return out
}

// Value returns the face value of the coin.
func (c Coin) Value() int {
	return int(c)
}

// Valid reports whether c is one of the accepted denominations.
func (c Coin) Valid() bool {
	switch c {
	case One, Two, Five, Ten, Twenty, Fifty:
		return true
	}
	return false
}

func (c Coin) String() string {
	return strconv.Itoa(int(c))
}

// CoinOf returns the coin with face value v.
func CoinOf(v int) (Coin, error) {
	c := Coin(v)
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCoin, v)
	}
	return c, nil
}

// ParseCoin parses a face value such as "20".
func ParseCoin(s string) (Coin, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Join(ErrUnknownCoin, err)
	}
	return CoinOf(v)
}

// ParseCoins parses every value in values and stops at the first invalid one.
func ParseCoins(values ...string) ([]Coin, error) {
	coins := make([]Coin, 0, len(values))
	for _, v := range values {
		c, err := ParseCoin(v)
		if err != nil {
			return nil, err
		}
		coins = append(coins, c)
	}
	return coins, nil
}
