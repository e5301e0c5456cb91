package domain

// ValidationError reports why a piece of sign-up input was rejected.
// Its message is safe to show to the caller.
type ValidationError struct {
	// Field names the offending form field.
	Field string
	// Reason describes the violated rule.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// NewSubscriber pairs a validated name and email. It is a transient value
// used to drive persistence and has no identity of its own.
type NewSubscriber struct {
	Name  SubscriberName
	Email SubscriberEmail
}

// ParseNewSubscriber validates both sign-up fields. Either failure rejects
// the whole sign-up; there is no partial success.
func ParseNewSubscriber(name, email string) (NewSubscriber, error) {
	n, err := ParseSubscriberName(name)
	if err != nil {
		return NewSubscriber{}, err
	}
	e, err := ParseSubscriberEmail(email)
	if err != nil {
		return NewSubscriber{}, err
	}
	return NewSubscriber{Name: n, Email: e}, nil
}
