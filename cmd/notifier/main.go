package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pesokrava/ratingfy/internal/config"
	"github.com/Pesokrava/ratingfy/internal/delivery/events"
	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewWithLevel(cfg.Env, cfg.LogLevel)
	appLogger.Info("Starting notifier service...")

	nc, err := events.Connect(cfg.NATS.URL, "ratingfy-notifier", appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", err)
	}
	defer nc.Close()

	consumer := events.NewConsumer(nc, appLogger)
	defer consumer.Close()

	if err := consumer.Subscribe(domain.SubjectReviewEvents, events.NotificationHandler(appLogger)); err != nil {
		appLogger.Fatal("Failed to subscribe to review events", err)
	}

	appLogger.Info("Notifier service started and listening for events...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down notifier service...")
}
