// Command consumer tails client lifecycle events from RabbitMQ and appends
// them to <EVENTS_LOG_DIR>/events.log.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/client-accounts/internal/config"
	"github.com/iliyamo/client-accounts/internal/logger"
	"github.com/iliyamo/client-accounts/internal/queue"
)

func main() {
	_ = godotenv.Load()

	lg, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ec := config.LoadEventsConfig()
	if ec.URL == "" {
		ec.URL = config.DefaultAMQPURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{URL: ec.URL, Queue: ec.Queue, LogDir: ec.LogDir, Log: lg.With("component", "consumer")}
	lg.Infow("consuming", "queue", ec.Queue, "log_dir", ec.LogDir)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Errorw("consumer stopped", "error", err)
	}
}
