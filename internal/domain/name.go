// Package domain holds validated subscriber values. Raw form input only
// becomes a SubscriberName or SubscriberEmail by passing the parse
// functions; construction is the single validation point.
package domain

import (
	"strings"

	"github.com/rivo/uniseg"
)

// maxNameGraphemes is the upper bound on a subscriber name, counted in
// extended grapheme clusters rather than bytes or runes, so that composed
// characters count as one user-perceived character.
const maxNameGraphemes = 256

// forbiddenNameRunes are rejected anywhere in a subscriber name.
var forbiddenNameRunes = []rune{'/', '(', ')', '"', '<', '>', '\\', '{', '}'}

// SubscriberName is a validated subscriber display name.
type SubscriberName string

// ParseSubscriberName validates raw form input as a subscriber name.
// It fails if the trimmed input is empty, exceeds 256 extended grapheme
// clusters, or contains a forbidden character. Invalid input is rejected
// outright, never truncated or coerced.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if uniseg.GraphemeClusterCount(raw) > maxNameGraphemes {
		return "", &ValidationError{Field: "name", Reason: "must not exceed 256 characters"}
	}
	if strings.ContainsAny(raw, string(forbiddenNameRunes)) {
		return "", &ValidationError{Field: "name", Reason: "contains a forbidden character"}
	}
	return SubscriberName(raw), nil
}

// String returns the validated name.
func (n SubscriberName) String() string {
	return string(n)
}
