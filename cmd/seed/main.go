package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/config"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/postgres"
	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/products"
)

var seedProducts = []products.Input{
	{Name: "SF Sonic Flash Start FS1440", Category: "Car", Supplier: "SF Sonic", Price: decimal.NewFromInt(4800), Stock: 10},
	{Name: "SF Sonic Flash Start FS1080", Category: "Car", Supplier: "SF Sonic", Price: decimal.NewFromInt(4200), Stock: 15},
	{Name: "SF Sonic Power Box PX1800", Category: "Car", Supplier: "SF Sonic", Price: decimal.NewFromInt(5100), Stock: 12},
	{Name: "SF Sonic MaxLife ML1600", Category: "Car", Supplier: "SF Sonic", Price: decimal.NewFromInt(4950), Stock: 8},
	{Name: "SF Sonic Super Sonic SS1555", Category: "Car", Supplier: "SF Sonic", Price: decimal.NewFromInt(5300), Stock: 9},
	{Name: "SF Sonic Bike Rider BR1000", Category: "Bike", Supplier: "SF Sonic", Price: decimal.NewFromInt(1200), Stock: 25},
	{Name: "SF Sonic Bike Rider BR1200", Category: "Bike", Supplier: "SF Sonic", Price: decimal.NewFromInt(1300), Stock: 20},
	{Name: "SF Sonic Zoom ZX1050", Category: "Bike", Supplier: "SF Sonic", Price: decimal.NewFromInt(1350), Stock: 18},
	{Name: "SF Sonic Moto Spark MS980", Category: "Bike", Supplier: "SF Sonic", Price: decimal.NewFromInt(1100), Stock: 22},
	{Name: "SF Sonic QuickStart QS1120", Category: "Bike", Supplier: "SF Sonic", Price: decimal.NewFromInt(1250), Stock: 16},
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg := config.Load()
	ctx := context.Background()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := &products.Repo{DB: db}

	existing, err := repo.List(ctx)
	if err != nil {
		logger.Error("list products failed", "error", err)
		os.Exit(1)
	}
	if len(existing) > 0 {
		logger.Info("products already seeded", "count", len(existing))
		return
	}

	for _, in := range seedProducts {
		p, err := repo.Create(ctx, in)
		if err != nil {
			logger.Error("seed product failed", "name", in.Name, "error", err)
			os.Exit(1)
		}
		logger.Info("seeded", "id", p.ID, "name", p.Name, "stock", p.Stock)
	}
	logger.Info("seeding complete", "count", len(seedProducts))
}
