package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	letters      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
	alphanumeric = letters + digits
)

func randomFrom(charset string, n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(charset)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(charset[idx.Int64()])
	}
	return b.String(), nil
}

// RandomDigits returns n uniformly random decimal digits.
func RandomDigits(n int) (string, error) {
	return randomFrom(digits, n)
}

// RandomLetters returns n uniformly random uppercase letters.
func RandomLetters(n int) (string, error) {
	return randomFrom(letters, n)
}

// RandomAlphanumeric returns n uniformly random uppercase letters or digits.
func RandomAlphanumeric(n int) (string, error) {
	return randomFrom(alphanumeric, n)
}
