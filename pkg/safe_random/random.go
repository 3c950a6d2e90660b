package safe_random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
)

// GenerateRandomBytes returns n cryptographically secure random bytes.
func GenerateRandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return nil, fmt.Errorf("could not generate random bytes: %w", err)
	}
	return b, nil
}

// GenerateRandomHexString returns a secure random string of n bytes, hex encoded
// (so the string is 2n characters long).
func GenerateRandomHexString(n int) (string, error) {
	b, err := GenerateRandomBytes(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandomInt returns a uniform random value in [0, max).
func GenerateRandomInt(max *big.Int) (*big.Int, error) {
	if max.Sign() <= 0 {
		return nil, fmt.Errorf("max must be positive")
	}
	return rand.Int(rand.Reader, max)
}

// GenerateRandomDigits returns a string of exactly n ASCII digits,
// uniform over [0, 10^n). Leading zeros are kept.
func GenerateRandomDigits(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("digit count must be positive")
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := GenerateRandomInt(max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v), nil
}

// Reader is the shared CSPRNG, crypto/rand.Reader by default.
var Reader io.Reader = rand.Reader
