package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/config"
	kafkax "github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/kafka"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/notifier"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/orders"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notifier.Service{
		Redis: rdb,
		Log:   logger,
	}
	if cfg.SMTPAddr != "" {
		svc.Mailer = &notifier.SMTPMailer{Addr: cfg.SMTPAddr, From: cfg.SMTPFrom}
	}

	topics := []string{
		orders.TopicOrderPlaced,
		orders.TopicOrderCancelled,
		orders.TopicOrderStatusChanged,
		orders.TopicOTPIssued,
	}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.NotifierGroup, topics, cfg.NotifierWorkers, logger)

	go func() {
		logger.Info("notifier consumer started",
			"group", cfg.NotifierGroup, "topics", topics, "workers", cfg.NotifierWorkers)
		if err := cons.Start(ctx, svc.HandleEvent); err != nil {
			logger.Error("consumer exited", "error", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	logger.Info("shutting down notifier")
	cancel()
}
