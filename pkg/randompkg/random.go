// Package randompkg provides functionality for generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/go-petr/pet-vending/pkg/coinpkg"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// IntBetween generates a random integer between min and max inclusive.
func IntBetween(min, max int) int64 {
	return int64(min) + Intn(max-min+1)
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// Username generates a random e-mail shaped username.
func Username() string {
	return fmt.Sprintf("%s@email.com", String(10))
}

// ProductName generates a random product name.
func ProductName() string {
	return strings.ToUpper(String(1)) + String(7)
}

// Cost generates a random product cost in cents that is a multiple of 5.
func Cost() int64 {
	return IntBetween(1, 100) * 5
}

// Coins generates n random accepted coins.
func Coins(n int) []int64 {
	coins := make([]int64, n)
	for i := range coins {
		coins[i] = coinpkg.Denominations[Intn(len(coinpkg.Denominations))]
	}

	return coins
}
