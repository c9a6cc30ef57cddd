// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jason-s-yu/thegame/internal/cache"
	"github.com/jason-s-yu/thegame/internal/config"
	"github.com/jason-s-yu/thegame/internal/game"
	"github.com/jason-s-yu/thegame/internal/handlers"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Unknown log level %q, using info.", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := game.Options{Logger: logger}
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			logger.WithError(err).Warn("Action history disabled.")
		} else {
			defer rdb.Close()
			opts.Recorder = cache.NewPublisher(rdb, cfg.HistorianQueue)
			logger.Infof("Recording actions to Redis list %s.", cfg.HistorianQueue)
		}
	}

	g := game.NewGame(opts)
	gs := handlers.NewGameServer(g, logger)

	ln, err := net.Listen("tcp", cfg.ListenAddr())
	if err != nil {
		logger.Fatalf("listen on %s: %v", cfg.ListenAddr(), err)
	}

	serveErr := make(chan error, 2)
	go func() {
		serveErr <- gs.ServeTCP(ctx, ln)
	}()

	var httpSrv *http.Server
	if cfg.WSAddr != "" {
		httpSrv = &http.Server{Addr: cfg.WSAddr, Handler: handlers.NewMux(gs)}
		go func() {
			logger.Infof("WebSocket gateway on %s", cfg.WSAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
		}()
	}

	go func() {
		if err := handlers.RunConsole(ctx, os.Stdin, g, logger); err != nil {
			logger.WithError(err).Warn("Console closed.")
		}
	}()
	logger.Info("Type 'start' to deal the hands once everyone has joined.")

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received.")
	case <-gs.Done():
	case err := <-serveErr:
		if err != nil {
			logger.WithError(err).Error("Server stopped.")
		}
	}

	stop()
	ln.Close()
	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}
	logger.Info("Server shut down.")
}
