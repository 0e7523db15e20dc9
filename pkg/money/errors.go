package money

import "errors"

var (
	// ErrUnknownCoin is returned when a value is not one of the accepted denominations.
	ErrUnknownCoin = errors.New("unknown coin denomination")

	// ErrNoChange is returned when the stock cannot pay out the requested amount exactly.
	ErrNoChange = errors.New("not enough coins to give change")

	// ErrNegativeAmount is returned when a negative amount is requested.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInsufficientCoins is returned when a stock deduction exceeds the available coins.
	ErrInsufficientCoins = errors.New("insufficient coins in stock")
)
