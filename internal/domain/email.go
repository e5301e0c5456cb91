package domain

import (
	"net/mail"
	"strings"
)

// SubscriberEmail is a validated subscriber email address.
type SubscriberEmail string

// ParseSubscriberEmail validates raw input as an email address. The input
// must be a bare address ("user@domain.tld"); display-name forms accepted
// by RFC 5322 parsing are rejected because nothing upstream produces them.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	if strings.TrimSpace(raw) == "" {
		return "", &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return "", &ValidationError{Field: "email", Reason: "is not a valid email address"}
	}
	if addr.Address != raw {
		return "", &ValidationError{Field: "email", Reason: "must be a bare address"}
	}
	return SubscriberEmail(raw), nil
}

// String returns the validated address.
func (e SubscriberEmail) String() string {
	return string(e)
}
