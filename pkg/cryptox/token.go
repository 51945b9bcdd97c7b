package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultStringLength is the length of generated salts and bearer tokens.
// Existing records use 16 character alphanumeric values.
const DefaultStringLength = 16

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns n characters drawn uniformly from [a-zA-Z0-9] using
// crypto/rand. Used for password salts and bearer tokens.
func RandomString(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", n)
	}

	limit := big.NewInt(int64(len(alphanumeric)))
	out := make([]byte, n)
	for i := range out {
		v, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate random string: %w", err)
		}
		out[i] = alphanumeric[v.Int64()]
	}
	return string(out), nil
}

// MustRandomString is like RandomString but panics on error. Use this only in
// tests and initialisation code.
func MustRandomString(n int) string {
	s, err := RandomString(n)
	if err != nil {
		panic(fmt.Sprintf("cryptox: %v", err))
	}
	return s
}
