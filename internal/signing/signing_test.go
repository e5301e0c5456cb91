package signing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	secret := []byte("process-wide secret")
	message := "Authentication failed"

	_, tag := Sign(message, secret)
	got, err := Verify(message, tag, secret)
	require.NoError(t, err)
	assert.Equal(t, message, got)
}

func TestSign_URLEncodesMessage(t *testing.T) {
	secret := []byte("secret")
	encoded, tag := Sign("spaces & ampersands", secret)
	assert.NotContains(t, encoded, " ")
	assert.NotContains(t, encoded, "&")

	// The decoded form, as query parsing hands it back, still verifies.
	got, err := Verify("spaces & ampersands", tag, secret)
	require.NoError(t, err)
	assert.Equal(t, "spaces & ampersands", got)
}

func TestVerify_Tampered(t *testing.T) {
	secret := []byte("secret")
	message := "Authentication failed"
	_, tag := Sign(message, secret)

	cases := []struct {
		name    string
		message string
		tag     string
	}{
		{"flipped tag bit", message, flipHexBit(tag)},
		{"truncated tag", message, tag[:len(tag)-2]},
		{"non-hex tag", message, "zz" + tag[2:]},
		{"empty tag", message, ""},
		{"modified message", message + "x", tag},
		{"empty message", "", tag},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Verify(tc.message, tc.tag, secret)
			assert.ErrorIs(t, err, ErrTampered)
		})
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	message := "Authentication failed"
	_, tag := Sign(message, []byte("one secret"))
	_, err := Verify(message, tag, []byte("another secret"))
	assert.ErrorIs(t, err, ErrTampered)
}

func flipHexBit(tag string) string {
	b := []byte(tag)
	if b[0] == '0' {
		b[0] = '1'
	} else {
		b[0] = '0'
	}
	return string(b)
}
