package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruralpay/ledger/internal/audit"
	"github.com/ruralpay/ledger/internal/config"
	"github.com/ruralpay/ledger/internal/database"
	"github.com/ruralpay/ledger/internal/handlers"
	"github.com/ruralpay/ledger/internal/logging"
	"github.com/ruralpay/ledger/internal/services"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load(".env")
	logger := logging.NewLogger(cfg.App.Name, cfg.App.Env, cfg.Log.Level)

	ctx := context.Background()

	// Directory and factories
	hasher := services.NewPasswordHasher(cfg.Argon2)
	bank := services.NewBankingService(
		services.NewUserFactory(services.NewSequence(services.DefaultSequenceBaseline), hasher),
		services.NewAccountFactory(services.NewSequence(services.DefaultSequenceBaseline)),
		hasher,
		logger,
	)

	// Execution pipeline and observers
	transactionService := services.NewTransactionService(logger)

	auditLogger, err := audit.OpenAuditLogger(cfg.Audit.File, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open audit log")
	}
	defer auditLogger.Close()
	transactionService.AddObserver(auditLogger)

	notificationService := services.NewNotificationService(cfg.Notification.Threshold, logger)
	transactionService.AddObserver(notificationService)

	if cfg.Audit.SQLEnabled {
		db, err := database.InitDB(ctx, cfg.Database, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database")
		}
		defer db.Close()

		recorder := audit.NewSQLRecorder(db)
		if err := recorder.EnsureSchema(ctx); err != nil {
			logger.WithError(err).Fatal("Failed to prepare audit table")
		}
		transactionService.AddObserver(recorder)
	}

	if redisClient := database.InitRedis(ctx, cfg.Redis, logger); redisClient != nil {
		defer redisClient.Close()
		transactionService.AddObserver(services.NewRedisFeed(redisClient, cfg.Notification.FeedLength))
	}

	router := handlers.NewRouter(handlers.Dependencies{
		Bank:          bank,
		Transactions:  transactionService,
		Notifications: notificationService,
		ISO20022:      services.NewISO20022Service(cfg.Ledger.Currency, cfg.Ledger.BIC),
		QR:            services.NewQRService(0),
		Logger:        logger,
	})

	logger.WithFields(logrus.Fields{
		"currency":  cfg.Ledger.Currency,
		"threshold": cfg.Notification.Threshold,
		"observers": len(transactionService.Observers()),
	}).Info("Ledger ready")

	// Start server
	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}
