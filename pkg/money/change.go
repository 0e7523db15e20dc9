package money

import "fmt"

// MakeChange selects coins from stock that sum exactly to amount.
//
// After every coin taken the scan restarts from the largest denomination,
// picking the largest one that is in stock and does not exceed the remainder.
// There is no backtracking: ErrNoChange is returned as soon as no coin fits,
// even if another combination would have worked.
//
// stock is never modified. A zero amount yields empty Money and no error.
func MakeChange(stock Stock, amount int) (Money, error) {
	if amount < 0 {
		return Money{}, fmt.Errorf("%w: %d", ErrNegativeAmount, amount)
	}

	left := stock.Clone()
	var change Money
	remaining := amount

	for remaining > 0 {
		taken := false
		for _, c := range descending {
			if c.Value() > remaining || left[c] == 0 {
				continue
			}
			left[c]--
			change.Add(c)
			remaining -= c.Value()
			taken = true
			break
		}
		if !taken {
			return Money{}, fmt.Errorf("%w: %d left of %d", ErrNoChange, remaining, amount)
		}
	}

	return change, nil
}
