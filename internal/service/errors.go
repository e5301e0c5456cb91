// Package service implements the business logic of the newsletter service:
// the subscription workflow, credential verification, and issue fan-out.
// Persistence is delegated to repository interfaces and outbound email to a
// Mailer interface.
package service

import "errors"

// ErrInvalidCredentials is returned for a bad username or a bad password.
// The two cases are deliberately indistinguishable to the caller so that
// usernames cannot be enumerated.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnknownToken is returned when a confirmation token does not resolve
// to a subscriber. Malformed and non-existent tokens look the same.
var ErrUnknownToken = errors.New("unknown subscription token")

// PersistenceError wraps a failure of the relational store. It surfaces as
// a generic server error; the cause chain is only ever logged.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return "persistence: " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

// NotificationError wraps a failure of the outbound mail capability. It is
// kept distinct from PersistenceError: by the time it occurs the
// subscriber row is already committed and stays committed.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string { return "notification: " + e.Err.Error() }

func (e *NotificationError) Unwrap() error { return e.Err }
