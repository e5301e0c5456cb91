// Package http provides HTTP handlers for newsletter sign-up,
// confirmation, publication, and login.
package http

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/pavelzar/mailpost/internal/domain"
	"github.com/pavelzar/mailpost/internal/service"
)

// SubscriptionService defines the interface for sign-up operations
// required by the HTTP handlers.
type SubscriptionService interface {
	// Subscribe validates sign-up input, persists the subscriber and
	// token atomically, and sends the confirmation email.
	Subscribe(ctx context.Context, name, email string) error
	// Confirm marks the subscriber behind a token as confirmed.
	Confirm(ctx context.Context, token string) error
}

// SubscriptionHandler handles HTTP requests for sign-up and confirmation.
type SubscriptionHandler struct {
	// SubscriptionService performs the underlying sign-up operations.
	SubscriptionService SubscriptionService
	// Log records failures with their full cause chain; the chain is
	// never written to the response.
	Log *zap.Logger
}

// Subscribe handles sign-up requests.
// It expects form fields "name" and "email". Validation failures return
// 400 with the rule that was violated; persistence failures return 500;
// a failed confirmation email returns 502 while the subscriber stays
// persisted.
func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	name := r.PostForm.Get("name")
	email := r.PostForm.Get("email")

	err := h.SubscriptionService.Subscribe(r.Context(), name, email)
	var validationErr *domain.ValidationError
	var notificationErr *service.NotificationError
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &notificationErr):
		h.Log.Error("failed to send confirmation email", zap.Error(err))
		http.Error(w, "internal error", http.StatusBadGateway)
	default:
		h.Log.Error("failed to persist new subscriber", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Confirm handles confirmation-link clicks.
// It expects a "subscription_token" query parameter. Unknown and malformed
// tokens both return 401 so near-miss tokens leak nothing; repeating a
// valid confirmation returns 200 again.
func (h *SubscriptionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("subscription_token")

	err := h.SubscriptionService.Confirm(r.Context(), token)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, service.ErrUnknownToken):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	default:
		h.Log.Error("failed to confirm subscriber", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
