package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microblog/internal/consul"
	"microblog/internal/logger"
	"microblog/internal/people"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	log := logger.New()
	logger.SetDefault(log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	srv, err := people.NewServer(ctx, log)
	cancel()
	if err != nil {
		slog.Error("failed to start people service", "error", err)
		os.Exit(1)
	}

	deregister := consul.RegisterFromEnv(log, "people-service", srv.Port)

	go func() {
		slog.Info("people service listening", "addr", srv.Addr())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down people service")
	deregister()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("people service stopped")
}
