// Package shortid generates short random base36 identifiers for bookings and services
package shortid

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var alphabetLen = big.NewInt(int64(len(alphabet)))

// New returns a random identifier of n characters from [0-9a-z]
func New(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("shortid: invalid length %d", n)
	}
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("shortid: read random: %w", err)
		}
		buf[i] = alphabet[idx.Int64()]
	}
	return string(buf), nil
}

// Generator produces identifiers; swapped for a fixed sequence in tests
type Generator interface {
	NewID() (string, error)
}

// Random is the production Generator
type Random struct {
	Length int
}

func (r Random) NewID() (string, error) {
	return New(r.Length)
}
