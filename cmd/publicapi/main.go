package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"

	"publicapi/internal/agreements"
	agreementsapi "publicapi/internal/agreements/api"
	"publicapi/internal/backend"
	"publicapi/internal/backend/connector"
	"publicapi/internal/backend/ledger"
	"publicapi/internal/backend/publicauth"
	"publicapi/internal/common/database"
	"publicapi/internal/common/events"
	"publicapi/internal/common/metrics"
	"publicapi/internal/common/nats"
	"publicapi/internal/disputes"
	disputesapi "publicapi/internal/disputes/api"
	"publicapi/internal/hal"
	"publicapi/internal/health"
	"publicapi/internal/idempotency"
	"publicapi/internal/mandates"
	mandatesapi "publicapi/internal/mandates/api"
	"publicapi/internal/payments"
	paymentsapi "publicapi/internal/payments/api"
	"publicapi/internal/ratelimit"
	"publicapi/internal/refunds"
	refundsapi "publicapi/internal/refunds/api"
	"publicapi/internal/server"
	"publicapi/internal/telephone"
	telephoneapi "publicapi/internal/telephone/api"
)

// Config holds service configuration
type Config struct {
	Port        int    `envconfig:"PUBLICAPI_PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`

	BaseURL        string `envconfig:"PUBLIC_API_BASE_URL" required:"true"`
	ConnectorURL   string `envconfig:"CONNECTOR_URL" required:"true"`
	LedgerURL      string `envconfig:"LEDGER_URL" required:"true"`
	PublicAuthURL  string `envconfig:"PUBLIC_AUTH_URL" required:"true"`
	HMACSecret     string `envconfig:"TOKEN_API_HMAC_SECRET" required:"true"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS"`

	Backend   backend.Config
	RateLimit ratelimit.Config
	Database  database.Config
	NATS      nats.Config
}

func main() {
	// Load configuration
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to process config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.RateLimit.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid rate limiter config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)

	// Create context that listens for shutdown signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	m := metrics.New()
	checker := health.NewChecker(5*time.Second, logger)

	// Backend clients
	connectorClient := connector.New(backend.NewClient("connector", cfg.ConnectorURL, cfg.Backend, logger, backend.WithRecorder(m)))
	ledgerClient := ledger.New(backend.NewClient("ledger", cfg.LedgerURL, cfg.Backend, logger, backend.WithRecorder(m)))
	authClient := publicauth.New(backend.NewClient("publicauth", cfg.PublicAuthURL, cfg.Backend, logger, backend.WithRecorder(m)))
	checker.Add("connector", connectorClient.Ping)
	checker.Add("ledger", ledgerClient.Ping)
	checker.Add("publicauth", authClient.Ping)

	// Audit events
	var publisher events.EventPublisher = events.NopPublisher{}
	if cfg.NATS.Enabled() {
		natsClient, err := nats.New(ctx, cfg.NATS, logger)
		if err != nil {
			logger.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer natsClient.Close()

		if _, err := natsClient.EnsureAuditStream(ctx, cfg.NATS.Stream); err != nil {
			logger.Error("failed to ensure stream", "error", err)
			os.Exit(1)
		}
		publisher = nats.NewPublisher(natsClient, logger)
		checker.Add("nats", natsClient.HealthCheck)
	}

	// Idempotent replay store
	var store idempotency.Store
	if cfg.Database.Enabled() {
		if err := database.Migrate(cfg.Database, logger); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
		db, err := database.New(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = idempotency.NewPostgresStore(db)
		checker.Add("database", db.HealthCheck)
	}

	// Rate limiter
	var limiter ratelimit.Limiter = ratelimit.NewLocalLimiter(cfg.RateLimit.Window())
	if cfg.RateLimit.RedisURL != "" {
		redisClient, err := ratelimit.NewRedisClient(ctx, cfg.RateLimit.RedisURL)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		redisLimiter := ratelimit.NewRedisLimiter(redisClient, cfg.RateLimit.Window())
		limiter = ratelimit.NewFallbackLimiter(redisLimiter, limiter, logger)
		checker.Add("redis", redisLimiter.HealthCheck)
	}

	// Create services
	links := hal.NewBuilder(cfg.BaseURL)
	paymentService := payments.NewService(connectorClient, ledgerClient, links, publisher, logger)
	refundService := refunds.NewService(connectorClient, ledgerClient, links, publisher, logger)
	agreementService := agreements.NewService(connectorClient, ledgerClient, links, publisher, logger)
	disputeService := disputes.NewService(ledgerClient, links, logger)
	mandateService := mandates.NewService(connectorClient, links, publisher, logger)
	telephoneService := telephone.NewService(connectorClient, publisher, logger)

	// Setup router
	router := server.NewRouter(server.Options{
		Logger:           logger,
		Metrics:          m,
		Health:           checker,
		AllowedOrigins:   splitOrigins(cfg.AllowedOrigins),
		Authenticator:    authClient,
		HMACSecret:       cfg.HMACSecret,
		Limiter:          limiter,
		RateLimit:        cfg.RateLimit,
		IdempotencyStore: store,
		IdempotencyTTL:   idempotency.DefaultTTL,
		Card: []server.Registrar{
			paymentsapi.NewHandler(paymentService, logger),
			disputesapi.NewHandler(disputeService, logger),
		},
		CardIdempotent: []server.Registrar{
			refundsapi.NewHandler(refundService, logger),
			agreementsapi.NewHandler(agreementService, logger),
			telephoneapi.NewHandler(telephoneService, logger),
		},
		DirectDebit: []server.Registrar{
			mandatesapi.NewHandler(mandateService, logger),
		},
	})

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Backend.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting public api",
			"port", cfg.Port,
			"environment", cfg.Environment,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown
	<-ctx.Done()

	// Graceful shutdown
	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func setupLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
