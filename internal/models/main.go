// Package models defines the core data structures for subscribers,
// confirmation tokens, stored credentials, and newsletter issues.
package models

import "time"

// Subscription statuses. A subscriber is created pending and is moved to
// confirmed exactly once; the transition is never reverted.
const (
	// StatusPendingConfirmation marks a subscriber who signed up but has
	// not yet followed the emailed confirmation link.
	StatusPendingConfirmation = "pending_confirmation"
	// StatusConfirmed marks a subscriber who confirmed their address.
	StatusConfirmed = "confirmed"
)

// Subscriber represents a persisted newsletter subscriber.
type Subscriber struct {
	// ID is the unique identifier for the subscriber.
	ID string
	// Email is the subscriber's address as submitted at sign-up.
	Email string
	// Name is the subscriber's display name.
	Name string
	// SubscribedAt is the UTC timestamp of the sign-up request.
	SubscribedAt time.Time
	// Status is either StatusPendingConfirmation or StatusConfirmed.
	Status string
}

// SubscriptionToken maps an unguessable token to the subscriber it can
// confirm. Rows are written in the same transaction as the subscriber row
// and are kept after use.
type SubscriptionToken struct {
	// Token is the 25-character alphanumeric confirmation token.
	Token string
	// SubscriberID references the subscriber the token confirms.
	SubscriberID string
}

// User represents a stored credential for a publisher account.
// Rows are provisioned out of band; this service only reads them.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Username is the login name.
	Username string
	// PasswordHash is the password hash in PHC string format.
	PasswordHash string
}

// NewsletterIssue is the body accepted by the publish endpoint.
type NewsletterIssue struct {
	// Title is the subject line of the issue.
	Title string `json:"title"`
	// Content holds the HTML and plain-text renderings of the issue.
	Content IssueContent `json:"content"`
}

// IssueContent holds both renderings of a newsletter issue.
type IssueContent struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}
