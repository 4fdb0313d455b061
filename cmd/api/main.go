package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/config"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/httpx"
	kafkax "github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/kafka"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/orders"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/otp"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/postgres"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/products"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	prod := kafkax.NewProducer(cfg.KafkaBrokers, 1024, logger)
	prod.Start(ctx)

	svc := orders.NewService(&orders.Repo{DB: db}, prod, rdb, cfg.ServiceName, logger)

	router := httpx.NewRouter()
	(&httpx.OrdersHandler{Service: svc, Log: logger}).Register(router)
	(&httpx.ProductsHandler{Store: &products.Repo{DB: db}, Log: logger}).Register(router)
	(&httpx.ProfileHandler{
		OTP:      otp.NewStore(rdb, cfg.OTPTTL),
		Producer: prod,
		Service:  cfg.ServiceName,
		Log:      logger,
	}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close() // stop intake, flush what is buffered
	cancel()
	prod.WaitClosed()
}
