// Package main initializes and starts the mailpost newsletter server,
// setting up configuration, logging, database connections, repositories,
// services, and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/pavelzar/mailpost/internal/config"
	"github.com/pavelzar/mailpost/internal/db"
	"github.com/pavelzar/mailpost/internal/logger"
	"github.com/pavelzar/mailpost/internal/mail"
	"github.com/pavelzar/mailpost/internal/repository"
	"github.com/pavelzar/mailpost/internal/server/handler/http"
	"github.com/pavelzar/mailpost/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, file, and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.HMACSecret == "" {
		zapLogger.Fatal("hmac_secret must be configured")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Prune sign-ups that were never confirmed.
	db.StartPendingCleaner(context.Background(), postgresDB,
		options.Cleaner.Interval(),
		options.Cleaner.Retention(),
		zapLogger,
	)

	// Initialize repositories for subscriptions and stored credentials.
	subscriptionRepo := repository.NewPostgresSubscriptionRepository(postgresDB)
	credentialRepo := repository.NewPostgresCredentialRepository(postgresDB)

	// The mail client is shared, read-only, across all requests.
	mailer := mail.New(
		options.Mail.BaseURL,
		options.Mail.ServerToken,
		options.Mail.Sender,
		options.Mail.Timeout(),
	)

	// Initialize business-logic services.
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, mailer, options.BaseURL, zapLogger)
	newsletterService := service.NewNewsletterService(subscriptionRepo, mailer, zapLogger)
	authService := service.NewAuthService(credentialRepo)

	// Create HTTP handlers.
	subscriptionHandler := &http.SubscriptionHandler{SubscriptionService: subscriptionService, Log: zapLogger}
	newsletterHandler := &http.NewsletterHandler{NewsletterService: newsletterService, Log: zapLogger}
	loginHandler := &http.LoginHandler{AuthService: authService, Secret: []byte(options.HMACSecret), Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(subscriptionHandler, newsletterHandler, loginHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
