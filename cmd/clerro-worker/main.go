package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/karthikeyanvk18/Clerro/internal/amqp"
	"github.com/karthikeyanvk18/Clerro/internal/config"
	"github.com/karthikeyanvk18/Clerro/internal/log"
	"github.com/karthikeyanvk18/Clerro/internal/notify"
	"github.com/karthikeyanvk18/Clerro/internal/storage"
	"github.com/karthikeyanvk18/Clerro/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: log.ComponentWorker})
	log.SetDefault(logger)

	logger.Info("Starting clerro-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the dispatch worker")
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	pusher := notify.NewPusher(notify.PusherConfig{
		APIURL: cfg.PushAPIURL,
		AppID:  cfg.PushAppID,
		APIKey: cfg.PushAPIKey,
	}, logger)
	mailer := notify.NewMailer(notify.MailerConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	}, logger)

	dispatcher := worker.NewDispatchWorker(repo, pusher, mailer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeNotifications(ctx, func(msg *amqp.NotificationMessage) error {
			return dispatcher.HandleMessage(ctx, msg)
		})
	})

	logger.Info("Consuming notification messages", "queue", cfg.AMQPQueue)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
