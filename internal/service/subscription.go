package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pavelzar/mailpost/internal/domain"
	"github.com/pavelzar/mailpost/internal/models"
)

// SubscriptionRepository defines the persistence operations required by
// the subscription service.
type SubscriptionRepository interface {
	// CreateSubscription atomically inserts the subscriber row and its
	// confirmation token mapping. On failure neither row exists.
	CreateSubscription(ctx context.Context, sub models.Subscriber, token string) error
	// GetSubscriberIDFromToken resolves a token to a subscriber id;
	// found is false for unknown tokens.
	GetSubscriberIDFromToken(ctx context.Context, token string) (id string, found bool, err error)
	// ConfirmSubscriber marks the subscriber as confirmed. Idempotent.
	ConfirmSubscriber(ctx context.Context, id string) error
}

// Mailer is the outbound message-send capability: one recipient, one
// message, success or failure. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SubscriptionService coordinates the sign-up workflow: validate input,
// persist subscriber and token atomically, then email the confirmation
// link outside the transaction.
type SubscriptionService struct {
	repo    SubscriptionRepository
	mailer  Mailer
	baseURL string
	log     *zap.Logger
}

// NewSubscriptionService constructs a SubscriptionService.
// baseURL is the public base URL embedded in confirmation links.
func NewSubscriptionService(repo SubscriptionRepository, mailer Mailer, baseURL string, log *zap.Logger) *SubscriptionService {
	return &SubscriptionService{repo: repo, mailer: mailer, baseURL: baseURL, log: log}
}

// Subscribe runs one sign-up request end to end.
//
// Errors by class: a *domain.ValidationError means nothing was persisted;
// a *PersistenceError means the transaction rolled back and neither the
// subscriber row nor the token exists; a *NotificationError means the
// subscriber and token are committed but the confirmation email did not go
// out. The committed row is deliberately kept in that last case: a failed
// send must not lose the sign-up, and no automatic retry happens within
// this request.
func (s *SubscriptionService) Subscribe(ctx context.Context, name, email string) error {
	sub, err := domain.ParseNewSubscriber(name, email)
	if err != nil {
		return err
	}

	token, err := domain.NewSubscriptionToken()
	if err != nil {
		return &PersistenceError{Err: fmt.Errorf("generate subscription token: %w", err)}
	}

	record := models.Subscriber{
		ID:           uuid.NewString(),
		Email:        sub.Email.String(),
		Name:         sub.Name.String(),
		SubscribedAt: time.Now().UTC(),
		Status:       models.StatusPendingConfirmation,
	}
	if err := s.repo.CreateSubscription(ctx, record, token); err != nil {
		return &PersistenceError{Err: err}
	}

	if err := s.sendConfirmationEmail(ctx, sub.Email.String(), token); err != nil {
		return &NotificationError{Err: err}
	}
	return nil
}

// Confirm resolves a confirmation token and marks its subscriber as
// confirmed. Unknown or malformed tokens yield ErrUnknownToken without
// touching any state; confirming twice is harmless.
func (s *SubscriptionService) Confirm(ctx context.Context, token string) error {
	id, found, err := s.repo.GetSubscriberIDFromToken(ctx, token)
	if err != nil {
		return &PersistenceError{Err: err}
	}
	if !found {
		return ErrUnknownToken
	}
	if err := s.repo.ConfirmSubscriber(ctx, id); err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

func (s *SubscriptionService) sendConfirmationEmail(ctx context.Context, to, token string) error {
	link := fmt.Sprintf("%s/subscriptions/confirm?subscription_token=%s", s.baseURL, token)
	htmlBody := fmt.Sprintf(
		`Welcome to our newsletter!<br />Click <a href="%s">here</a> to confirm your subscription.`, link)
	textBody := fmt.Sprintf(
		"Welcome to our newsletter!\nVisit %s to confirm your subscription.", link)

	if err := s.mailer.Send(ctx, to, "Welcome!", htmlBody, textBody); err != nil {
		return fmt.Errorf("send confirmation email: %w", err)
	}
	s.log.Info("confirmation email sent", zap.String("subscriber_email", to))
	return nil
}
