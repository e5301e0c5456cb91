package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscriptionToken(t *testing.T) {
	token, err := NewSubscriptionToken()
	require.NoError(t, err)
	assert.Len(t, token, TokenLength)
	for _, r := range token {
		assert.True(t, strings.ContainsRune(tokenAlphabet, r), "unexpected character %q", r)
	}
}

func TestNewSubscriptionToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewSubscriptionToken()
		require.NoError(t, err)
		assert.False(t, seen[token], "token %q generated twice", token)
		seen[token] = true
	}
}
