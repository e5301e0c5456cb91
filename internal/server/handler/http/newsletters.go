package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/pavelzar/mailpost/internal/middleware"
	"github.com/pavelzar/mailpost/internal/models"
)

// NewsletterService defines the interface for issue publication required
// by the HTTP handlers.
type NewsletterService interface {
	// Publish fans the issue out to every confirmed subscriber.
	Publish(ctx context.Context, issue models.NewsletterIssue) error
}

// NewsletterHandler handles HTTP requests for newsletter publication.
// The route is mounted behind the Basic-Auth middleware, so by the time
// Publish runs the request carries an authenticated user id.
type NewsletterHandler struct {
	// NewsletterService performs the underlying fan-out.
	NewsletterService NewsletterService
	// Log records failures with their full cause chain.
	Log *zap.Logger
}

// Publish handles newsletter publication requests.
// It expects a JSON body {title, content: {html, text}}. Any fan-out
// failure, persistence or transport, surfaces as a generic 500; the
// distinction lives in the logged cause chain.
func (h *NewsletterHandler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserIDFromContext(ctx)

	var issue models.NewsletterIssue
	if err := json.NewDecoder(r.Body).Decode(&issue); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.NewsletterService.Publish(ctx, issue); err != nil {
		h.Log.Error("failed to publish newsletter issue",
			zap.String("user_id", userID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.Log.Info("newsletter issue published",
		zap.String("user_id", userID), zap.String("title", issue.Title))
	w.WriteHeader(http.StatusOK)
}
