// Package generator mints random base62 tokens for short link keys.
package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	// KeyLength is the size of the public key used in redirect links.
	KeyLength = 7

	// SecretKeyLength is the size of the management secret. Secrets are
	// drawn independently of public keys so one never narrows the search
	// space for the other.
	SecretKeyLength = 16
)

// Generate draws a fresh random token of the given length. Uniqueness is
// not guaranteed here; the store's conditional insert enforces it.
func Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid token length %d", length)
	}

	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base62Chars))))
		if err != nil {
			return "", err
		}

		b[i] = base62Chars[n.Int64()]
	}

	return string(b), nil
}
