package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/pavelzar/mailpost/internal/models"
)

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation, e.g. a sign-up for an already subscribed email.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// PostgresSubscriptionRepository implements subscription persistence
// against a PostgreSQL database.
type PostgresSubscriptionRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresSubscriptionRepository creates a new
// PostgresSubscriptionRepository using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance.
func NewPostgresSubscriptionRepository(db *sql.DB) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{DB: db}
}

// CreateSubscription inserts the subscriber row and its confirmation token
// mapping in a single transaction. If either insert or the commit fails the
// whole transaction rolls back, so a pending subscriber never exists
// without a token and a token never exists without its subscriber.
//
//	ctx:   context for cancellation and deadlines
//	sub:   subscriber row to insert, status included
//	token: confirmation token to map to the subscriber
func (r *PostgresSubscriptionRepository) CreateSubscription(ctx context.Context, sub models.Subscriber, token string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO subscriptions (id, email, name, subscribed_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`, sub.ID, sub.Email, sub.Name, sub.SubscribedAt, sub.Status)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("insert subscription: email already subscribed: %w", err)
		}
		return fmt.Errorf("insert subscription: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO subscription_tokens (subscription_token, subscriber_id)
		VALUES ($1, $2)
	`, token, sub.ID)
	if err != nil {
		return fmt.Errorf("insert subscription token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetSubscriberIDFromToken resolves a confirmation token to its subscriber
// id. found is false when the token is unknown; malformed tokens simply
// fail the lookup the same way.
func (r *PostgresSubscriptionRepository) GetSubscriberIDFromToken(ctx context.Context, token string) (id string, found bool, err error) {
	err = r.DB.QueryRowContext(ctx, `
		SELECT subscriber_id FROM subscription_tokens WHERE subscription_token = $1
	`, token).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query subscriber id from token: %w", err)
	}
	return id, true, nil
}

// ConfirmSubscriber sets the subscriber's status to confirmed. The write is
// idempotent: re-confirming an already confirmed subscriber is a no-op.
func (r *PostgresSubscriptionRepository) ConfirmSubscriber(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE subscriptions SET status = $1 WHERE id = $2
	`, models.StatusConfirmed, id)
	if err != nil {
		return fmt.Errorf("confirm subscriber: %w", err)
	}
	return nil
}

// GetConfirmedEmails returns the stored email of every confirmed
// subscriber as a point-in-time snapshot.
func (r *PostgresSubscriptionRepository) GetConfirmedEmails(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT email FROM subscriptions WHERE status = $1
	`, models.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("query confirmed subscribers: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate confirmed subscribers: %w", err)
	}
	return emails, nil
}
