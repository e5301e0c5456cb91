package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pavelzar/mailpost/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// newsletter API.
//
// Routes:
//
//	GET  /                        → Home
//	GET  /health_check            → HealthCheck
//	POST /subscriptions           → subscriptionHandler.Subscribe
//	GET  /subscriptions/confirm   → subscriptionHandler.Confirm
//	POST /newsletters             → newsletterHandler.Publish (Basic-Auth)
//	GET  /login                   → loginHandler.Form
//	POST /login                   → loginHandler.Submit
//
// Every route is wrapped in request logging; the publish route is
// additionally guarded by the Basic-Auth middleware and restricted to
// JSON bodies.
func NewRouter(
	subscriptionHandler *SubscriptionHandler,
	newsletterHandler *NewsletterHandler,
	loginHandler *LoginHandler,
	validator middleware.CredentialValidator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/", Home)
	r.Get("/health_check", HealthCheck)

	r.Post("/subscriptions", subscriptionHandler.Subscribe)
	r.Get("/subscriptions/confirm", subscriptionHandler.Confirm)

	// Protected group: requires valid publisher credentials
	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))
		r.Use(middleware.BasicAuth(validator, logger))
		r.Post("/newsletters", newsletterHandler.Publish)
	})

	r.Get("/login", loginHandler.Form)
	r.Post("/login", loginHandler.Submit)

	return r
}
