// cmd/historian/main.go is an asynchronous historian service that pops game actions from a
// Redis queue and persists them to a PostgreSQL database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jason-s-yu/thegame/internal/cache"
	"github.com/jason-s-yu/thegame/internal/config"
	"github.com/jason-s-yu/thegame/internal/database"
	"github.com/jason-s-yu/thegame/internal/historian"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisAddr := cfg.RedisAddr
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb, err := cache.Connect(ctx, redisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatal(err)
	}
	defer rdb.Close()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal(err)
	}

	svc := historian.NewService(rdb, database.NewActionSink(pool), historian.Config{
		Queue:      cfg.HistorianQueue,
		BatchSize:  cfg.HistorianBatchSize,
		FlushDelay: cfg.HistorianFlush,
		Inactivity: cfg.InactivityTimeout,
	}, logger)
	svc.Run(ctx)
	logger.Info("Historian shutdown complete.")
}
