// Package middleware provides HTTP middlewares for authentication and
// logging.
package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pavelzar/mailpost/internal/service"
)

type ctxKey string

const userKey ctxKey = "user"

// CredentialValidator checks a username/password pair and returns the
// matching user id.
type CredentialValidator interface {
	ValidateCredentials(ctx context.Context, username, password string) (string, error)
}

// BasicAuth is a middleware that enforces HTTP Basic authentication.
//
// A missing header, wrong scheme, bad base64, non-UTF8 payload, or a
// payload without a colon is rejected the same way as bad credentials: a
// 401 with a WWW-Authenticate challenge and a generic body. On success the
// authenticated user id is stored in the request context.
func BasicAuth(validator CredentialValidator, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, pass, err := decodeBasicAuth(r.Header.Get("Authorization"))
			if err != nil {
				log.Warn("rejected publish request with malformed Authorization header", zap.Error(err))
				challenge(w)
				return
			}

			userID, err := validator.ValidateCredentials(r.Context(), username, pass)
			if errors.Is(err, service.ErrInvalidCredentials) {
				log.Warn("rejected publish request with invalid credentials", zap.String("username", username))
				challenge(w)
				return
			}
			if err != nil {
				log.Error("credential validation failed", zap.Error(err))
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user ID from the request
// context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

func challenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="publish"`)
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func decodeBasicAuth(header string) (username, password string, err error) {
	if header == "" {
		return "", "", errors.New("missing Authorization header")
	}
	scheme, payload, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Basic") {
		return "", "", errors.New("authorization scheme is not Basic")
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", errors.New("credentials are not valid base64")
	}
	if !utf8.Valid(decoded) {
		return "", "", errors.New("credentials are not valid UTF-8")
	}
	username, password, found = strings.Cut(string(decoded), ":")
	if !found {
		return "", "", errors.New("credentials are missing the username:password separator")
	}
	return username, password, nil
}
