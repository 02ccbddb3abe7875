package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microblog/internal/bookmarks"
	"microblog/internal/consul"
	"microblog/internal/logger"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	log := logger.New()
	logger.SetDefault(log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	srv, err := bookmarks.NewServer(ctx, log)
	cancel()
	if err != nil {
		slog.Error("failed to start bookmarks service", "error", err)
		os.Exit(1)
	}

	deregister := consul.RegisterFromEnv(log, "bookmarks-service", srv.Port)

	go func() {
		slog.Info("bookmarks service listening", "addr", srv.Addr())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down bookmarks service")
	deregister()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("bookmarks service stopped")
}
