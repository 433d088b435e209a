// Package coinpkg provides the accepted coin denominations and change making.
package coinpkg

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Denominations holds the accepted coin values in cents, sorted descending.
//
// CalculateChange relies on the order. Greedy change is minimal only because
// this set is canonical; it is not a general coin change solver.
var Denominations = [...]int64{100, 50, 20, 10, 5}

// Change is the number of coins of a single denomination.
type Change struct {
	Coin  int64 `json:"coin"`
	Count int64 `json:"count"`
}

// CalculateChange breaks the given amount of cents into coins.
//
// Denominations with zero count are omitted and any remainder below the
// smallest coin is dropped. A negative amount yields no change.
func CalculateChange(amount int64) []Change {
	changes := []Change{}
	remaining := amount

	for _, coin := range Denominations {
		if remaining >= coin {
			changes = append(changes, Change{Coin: coin, Count: remaining / coin})
			remaining %= coin
		}
	}

	return changes
}

// Total returns the amount of cents the changes add up to.
func Total(changes []Change) int64 {
	var total int64
	for _, c := range changes {
		total += c.Coin * c.Count
	}

	return total
}

// IsValidCoin returns true if the coin is one of the accepted denominations.
func IsValidCoin(coin int64) bool {
	for _, d := range Denominations {
		if d == coin {
			return true
		}
	}

	return false
}

// Sum adds up the coins. It reports false if any coin is not accepted.
func Sum(coins []int64) (int64, bool) {
	var sum int64

	for _, c := range coins {
		if !IsValidCoin(c) {
			return 0, false
		}

		sum += c
	}

	return sum, true
}

// ValidCoin validates whether the field holds an accepted coin.
var ValidCoin validator.Func = func(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return IsValidCoin(fl.Field().Int())
	}

	return false
}

// Format renders the amount of cents as a decimal string, e.g. 1185 as "11.85".
func Format(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
