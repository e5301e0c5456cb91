// Package signing protects user-visible messages that round-trip through a
// redirect query string. The message is URL-encoded and tagged with an
// HMAC-SHA256 over the encoded bytes so the next page load can detect
// tampering before rendering it.
package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
)

// ErrTampered is returned when a tag does not verify against the message.
// Callers treat it as "nothing to display", not as a hard failure.
var ErrTampered = errors.New("message tag does not verify")

// Sign URL-encodes message and computes a hex-encoded HMAC-SHA256 tag over
// the encoded bytes using secret. The encoded form is what gets embedded
// in the redirect query string.
func Sign(message string, secret []byte) (encoded, tag string) {
	encoded = url.QueryEscape(message)
	return encoded, hex.EncodeToString(computeMAC(encoded, secret))
}

// Verify checks tag against message as received from the query string
// (already URL-decoded by query parsing). The HMAC is recomputed over the
// re-encoded form, matching what Sign tagged. Any mismatch, including a
// truncated or non-hex tag, yields ErrTampered.
func Verify(message, tag string, secret []byte) (string, error) {
	got, err := hex.DecodeString(tag)
	if err != nil {
		return "", ErrTampered
	}
	if !hmac.Equal(got, computeMAC(url.QueryEscape(message), secret)) {
		return "", ErrTampered
	}
	return message, nil
}

func computeMAC(encoded string, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(encoded))
	return mac.Sum(nil)
}
