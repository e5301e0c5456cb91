// Package repository provides persistence implementations for the
// subscription and credential services using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pavelzar/mailpost/internal/models"
)

// PostgresCredentialRepository reads stored publisher credentials from a
// PostgreSQL database.
type PostgresCredentialRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCredentialRepository creates a new PostgresCredentialRepository
// with the given database connection. db must be a valid *sql.DB connected
// to a PostgreSQL instance.
func NewPostgresCredentialRepository(db *sql.DB) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{DB: db}
}

// GetByUsername fetches the stored credential for the given username.
// It returns (nil, nil) when no such user exists so that callers can
// distinguish "unknown user" from a failed query.
func (r *PostgresCredentialRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT user_id, username, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query stored credentials: %w", err)
	}
	return &user, nil
}
