package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pavelzar/mailpost/internal/domain"
	"github.com/pavelzar/mailpost/internal/models"
)

// ConfirmedSubscriberSource lists the stored emails of every confirmed
// subscriber at a single point in time.
type ConfirmedSubscriberSource interface {
	GetConfirmedEmails(ctx context.Context) ([]string, error)
}

// NewsletterService fans a published issue out to confirmed subscribers,
// one send per recipient.
type NewsletterService struct {
	subscribers ConfirmedSubscriberSource
	mailer      Mailer
	log         *zap.Logger
}

// NewNewsletterService constructs a NewsletterService.
func NewNewsletterService(subscribers ConfirmedSubscriberSource, mailer Mailer, log *zap.Logger) *NewsletterService {
	return &NewsletterService{subscribers: subscribers, mailer: mailer, log: log}
}

// Publish sends issue to every confirmed subscriber.
//
// The per-recipient policy is asymmetric on purpose: a stored email that no
// longer parses is logged and skipped, because stale data for one recipient
// must not block delivery to the rest, while a transport-level send failure
// aborts the remaining fan-out, because it may indicate a systemic outage.
// There is no retry; a failed batch is re-run by a new publish call.
func (s *NewsletterService) Publish(ctx context.Context, issue models.NewsletterIssue) error {
	emails, err := s.subscribers.GetConfirmedEmails(ctx)
	if err != nil {
		return &PersistenceError{Err: err}
	}

	for _, raw := range emails {
		email, err := domain.ParseSubscriberEmail(raw)
		if err != nil {
			s.log.Warn("skipping a confirmed subscriber, their stored email is invalid",
				zap.String("stored_email", raw), zap.Error(err))
			continue
		}
		if err := s.mailer.Send(ctx, email.String(), issue.Title, issue.Content.HTML, issue.Content.Text); err != nil {
			return &NotificationError{Err: fmt.Errorf("send newsletter issue to %s: %w", email, err)}
		}
	}
	return nil
}
