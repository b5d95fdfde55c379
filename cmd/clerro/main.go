package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/karthikeyanvk18/Clerro/internal/amqp"
	"github.com/karthikeyanvk18/Clerro/internal/auth"
	"github.com/karthikeyanvk18/Clerro/internal/config"
	apphttp "github.com/karthikeyanvk18/Clerro/internal/http"
	"github.com/karthikeyanvk18/Clerro/internal/log"
	"github.com/karthikeyanvk18/Clerro/internal/notify"
	"github.com/karthikeyanvk18/Clerro/internal/services"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting clerro")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// AMQP is optional for the API process. Without it notifications are
	// still stored, only the dispatch queue is skipped.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, notification dispatch disabled", "error", err)
		} else {
			defer amqpClient.Close()
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenExpiry)
	mailer := notify.NewMailer(notify.MailerConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	}, logger)

	notifications := services.NewNotificationService(repo, amqpClient)
	budgets := services.NewBudgetService(repo, notifications)
	reminders := services.NewReminderService(repo, notifications, cfg.ReminderWindowDays, logger)

	srv := apphttp.NewServer(tokens, apphttp.Services{
		Users:         services.NewUserService(repo, tokens, mailer),
		Debts:         services.NewDebtService(repo),
		Income:        services.NewIncomeService(repo, notifications),
		Expenses:      services.NewExpenseService(repo, budgets),
		Goals:         services.NewGoalService(repo, notifications),
		Payments:      services.NewPaymentService(repo, notifications, mailer),
		Budgets:       budgets,
		Dashboard:     services.NewDashboardService(repo),
		Notifications: notifications,
	}, logger)

	// Daily payment reminder scan.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReminderCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		raised, err := reminders.Scan(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Reminder scan failed", "error", err)
			return
		}
		logger.Info("Reminder scan complete", "raised", raised)
	}); err != nil {
		logger.Error("Invalid reminder cron spec", "error", err, "spec", cfg.ReminderCronSpec)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	httpSrv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        srv.Handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting clerro server", "port", cfg.Port)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
