package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medbook/doctors-portal/cmd/mainconfig"
	"github.com/medbook/doctors-portal/internal/api/router"
	"github.com/medbook/doctors-portal/internal/auth"
	"github.com/medbook/doctors-portal/internal/bookings"
	"github.com/medbook/doctors-portal/internal/catalog"
	appconfig "github.com/medbook/doctors-portal/internal/config"
	"github.com/medbook/doctors-portal/internal/doctors"
	"github.com/medbook/doctors-portal/internal/notify"
	"github.com/medbook/doctors-portal/internal/observability/metrics"
	"github.com/medbook/doctors-portal/internal/payments"
	"github.com/medbook/doctors-portal/internal/users"
	"github.com/medbook/doctors-portal/pkg/logging"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel, cfg.Env)
	logger.Info("starting doctors-portal API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.AccessTokenSecret == "" {
		logger.Error("ACCESS_TOKEN_SECRET must be set")
		os.Exit(1)
	}

	awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}
	dynamoClient := dynamodb.NewFromConfig(awsCfg)

	// Stores
	optionStore := catalog.NewStore(dynamoClient, cfg.OptionsTable, logger)
	bookingStore := bookings.NewDynamoStore(dynamoClient, cfg.BookingsTable, logger)
	userStore := users.NewDynamoStore(dynamoClient, cfg.UsersTable, logger)
	doctorStore := doctors.NewDynamoStore(dynamoClient, cfg.DoctorsTable, logger)
	paymentStore := payments.NewDynamoStore(dynamoClient, cfg.PaymentsTable, logger)

	// Metrics
	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)

	// Email
	var emailSender notify.EmailSender
	switch cfg.EmailProvider {
	case "sendgrid":
		emailSender = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
	case "ses":
		emailSender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
	default:
		emailSender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(emailSender, logger)

	// Services
	issuer, err := auth.NewIssuer(cfg.AccessTokenSecret, cfg.AccessTokenTTL)
	if err != nil {
		logger.Error("failed to build token issuer", "error", err)
		os.Exit(1)
	}
	bookingSvc := bookings.NewService(bookingStore, notifier, logger)
	availability := catalog.NewAvailabilityService(optionStore, bookingStore, logger)
	intentSvc := payments.NewStripeIntentService(cfg.StripeSecretKey, logger)

	// Router
	routerCfg := &router.Config{
		Logger:             logger,
		CatalogHandler:     catalog.NewHandler(availability, bookingMetrics, logger),
		BookingsHandler:    bookings.NewHandler(bookingSvc, bookingMetrics, logger),
		UsersHandler:       users.NewHandler(userStore, logger),
		DoctorsHandler:     doctors.NewHandler(doctorStore, logger),
		PaymentsHandler:    payments.NewHandler(intentSvc, paymentStore, bookingStore, bookingMetrics, logger),
		AuthHandler:        auth.NewHandler(userStore, issuer, bookingMetrics, logger),
		Issuer:             issuer,
		Roles:              userStore,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
