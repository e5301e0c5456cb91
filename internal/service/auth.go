package service

import (
	"context"
	"fmt"

	"github.com/pavelzar/mailpost/internal/models"
	"github.com/pavelzar/mailpost/internal/password"
)

// CredentialRepository defines the persistence operations required by the
// credential verifier.
type CredentialRepository interface {
	// GetByUsername returns the stored credential for a username, or
	// (nil, nil) when the username is unknown.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// VerifyFunc checks a password candidate against a PHC-encoded hash.
// It exists as an injection point for tests; production wiring uses
// password.Verify.
type VerifyFunc func(candidate, encoded string) (bool, error)

// AuthService verifies publisher credentials against stored password
// hashes.
type AuthService struct {
	repo   CredentialRepository
	verify VerifyFunc
}

// NewAuthService constructs an AuthService using the provided repository
// and password.Verify for hash checking.
func NewAuthService(repo CredentialRepository) *AuthService {
	return &AuthService{repo: repo, verify: password.Verify}
}

// ValidateCredentials checks the username/password pair and returns the
// matching user id. A bad username and a bad password both yield
// ErrInvalidCredentials; any other error means the store or the stored
// hash itself failed.
//
// When the username is unknown the check still runs against a fixed dummy
// hash so that both paths pay the same hashing cost. A match against the
// dummy hash never authenticates: without a stored user id the result is
// ErrInvalidCredentials regardless.
func (s *AuthService) ValidateCredentials(ctx context.Context, username, pass string) (string, error) {
	expectedHash := password.DummyHash
	var userID string

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("get stored credentials: %w", err)
	}
	if user != nil {
		userID = user.ID
		expectedHash = user.PasswordHash
	}

	ok, err := s.verify(pass, expectedHash)
	if err != nil {
		return "", fmt.Errorf("verify password hash: %w", err)
	}
	if !ok || userID == "" {
		return "", ErrInvalidCredentials
	}
	return userID, nil
}
