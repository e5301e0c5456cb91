package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pavelzar/mailpost/internal/models"
	"github.com/pavelzar/mailpost/internal/password"
)

type mockCredentialRepo struct {
	GetByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
}

func (m *mockCredentialRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.GetByUsernameFunc(ctx, username)
}

// countingVerifier records every hash it is asked to check, so tests can
// assert that the expensive verification step runs exactly once on every
// path, known username or not.
type countingVerifier struct {
	hashes []string
	match  bool
	err    error
}

func (c *countingVerifier) verify(candidate, encoded string) (bool, error) {
	c.hashes = append(c.hashes, encoded)
	return c.match, c.err
}

func TestValidateCredentials_Success(t *testing.T) {
	storedHash, err := password.Hash("everythinghastostartsomewhere")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := &mockCredentialRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			if username != "publisher" {
				t.Errorf("GetByUsername received username = %q; want %q", username, "publisher")
			}
			return &models.User{ID: "user-1", Username: "publisher", PasswordHash: storedHash}, nil
		},
	}
	svc := NewAuthService(repo)

	userID, err := svc.ValidateCredentials(context.Background(), "publisher", "everythinghastostartsomewhere")
	if err != nil {
		t.Fatalf("ValidateCredentials returned error: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("userID = %q; want %q", userID, "user-1")
	}
}

func TestValidateCredentials_WrongPassword(t *testing.T) {
	storedHash, err := password.Hash("the real password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo := &mockCredentialRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: "user-1", Username: "publisher", PasswordHash: storedHash}, nil
		},
	}
	svc := NewAuthService(repo)

	_, err = svc.ValidateCredentials(context.Background(), "publisher", "a guess")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v; want ErrInvalidCredentials", err)
	}
}

func TestValidateCredentials_UnknownUserStillHashes(t *testing.T) {
	repo := &mockCredentialRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return nil, nil
		},
	}
	verifier := &countingVerifier{match: false}
	svc := NewAuthService(repo)
	svc.verify = verifier.verify

	_, err := svc.ValidateCredentials(context.Background(), "nobody", "any password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v; want ErrInvalidCredentials", err)
	}
	if len(verifier.hashes) != 1 {
		t.Fatalf("verification ran %d times; want exactly 1", len(verifier.hashes))
	}
	if verifier.hashes[0] != password.DummyHash {
		t.Errorf("verification ran against %q; want the dummy hash", verifier.hashes[0])
	}
}

// A candidate that matches the dummy hash must still be rejected: without
// a stored user id there is nobody to authenticate as.
func TestValidateCredentials_DummyMatchNeverAuthenticates(t *testing.T) {
	repo := &mockCredentialRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return nil, nil
		},
	}
	verifier := &countingVerifier{match: true}
	svc := NewAuthService(repo)
	svc.verify = verifier.verify

	_, err := svc.ValidateCredentials(context.Background(), "nobody", "whatever the dummy hash encodes")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v; want ErrInvalidCredentials", err)
	}
}

func TestValidateCredentials_BothPathsVerifyOnce(t *testing.T) {
	known := &models.User{ID: "user-1", Username: "publisher", PasswordHash: "$argon2id$stored"}
	repo := &mockCredentialRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			if username == "publisher" {
				return known, nil
			}
			return nil, nil
		},
	}
	verifier := &countingVerifier{match: false}
	svc := NewAuthService(repo)
	svc.verify = verifier.verify

	_, _ = svc.ValidateCredentials(context.Background(), "publisher", "wrong")
	_, _ = svc.ValidateCredentials(context.Background(), "stranger", "wrong")

	if len(verifier.hashes) != 2 {
		t.Fatalf("verification ran %d times; want once per call", len(verifier.hashes))
	}
	if verifier.hashes[0] != known.PasswordHash {
		t.Errorf("known-user path verified %q; want the stored hash", verifier.hashes[0])
	}
	if verifier.hashes[1] != password.DummyHash {
		t.Errorf("unknown-user path verified %q; want the dummy hash", verifier.hashes[1])
	}
}

func TestValidateCredentials_RepoError(t *testing.T) {
	wantErr := errors.New("db down")
	repo := &mockCredentialRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return nil, wantErr
		},
	}
	svc := NewAuthService(repo)

	_, err := svc.ValidateCredentials(context.Background(), "publisher", "pw")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v; want an unexpected error distinct from ErrInvalidCredentials", err)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("error chain does not include the repository failure: %v", err)
	}
}

func TestValidateCredentials_CorruptStoredHash(t *testing.T) {
	repo := &mockCredentialRepo{
		GetByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			return &models.User{ID: "user-1", Username: "publisher", PasswordHash: "not-a-phc-string"}, nil
		},
	}
	svc := NewAuthService(repo)

	_, err := svc.ValidateCredentials(context.Background(), "publisher", "pw")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v; want an unexpected error distinct from ErrInvalidCredentials", err)
	}
}
