package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yousef10-awadh/dev-events/config"
	_ "github.com/yousef10-awadh/dev-events/docs"
	"github.com/yousef10-awadh/dev-events/internal/adapters/email"
	"github.com/yousef10-awadh/dev-events/internal/database"
	delivery "github.com/yousef10-awadh/dev-events/internal/delivery/http"
	"github.com/yousef10-awadh/dev-events/internal/delivery/http/controllers"
	"github.com/yousef10-awadh/dev-events/internal/delivery/http/middleware"
	"github.com/yousef10-awadh/dev-events/internal/repository/postgres"
	"github.com/yousef10-awadh/dev-events/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title dev-events API
// @version 1.0
// @description Backend API for listing, exploring, and booking developer events.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger()

	// The pool is owned here: dialed once at startup, injected into the
	// repositories, released on shutdown.
	pool := database.New(cfg.DBUrl)
	defer pool.Close()

	connectCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := pool.Get(connectCtx)
	cancel()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	logger.Info("connected to postgres")

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.AWSRegion,
			AccessKeyID:     cfg.Email.AWSAccessKeyID,
			SecretAccessKey: cfg.Email.AWSSecretAccessKey,
		},
	})
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())

	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	eventSvc := services.NewEventService(eventRepo, serviceTimeout)
	bookingSvc := services.NewBookingService(bookingRepo, eventRepo, emailSvc, serviceTimeout)

	eventController := controllers.NewEventController(logger, eventSvc)
	bookingController := controllers.NewBookingController(logger, bookingSvc)

	mux := delivery.NewRouter(eventController, bookingController)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}
