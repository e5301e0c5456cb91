package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// tokenAlphabet is the character set for subscription tokens.
const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenLength is the length of a subscription token. With a 62-character
// alphabet this gives ~149 bits of entropy; collisions are left to the
// token table's primary key as a backstop.
const TokenLength = 25

// NewSubscriptionToken generates an unguessable confirmation token from a
// cryptographically secure random source.
func NewSubscriptionToken() (string, error) {
	buf := make([]byte, TokenLength)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("read random source: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}
