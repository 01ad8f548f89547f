package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scorepoint/scoring-gateway/internal/application"
	"github.com/scorepoint/scoring-gateway/internal/auth"
	"github.com/scorepoint/scoring-gateway/internal/config"
	"github.com/scorepoint/scoring-gateway/internal/infrastructure/store"
	"github.com/scorepoint/scoring-gateway/internal/interfaces/rest"
	"github.com/scorepoint/scoring-gateway/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting scoring gateway",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"store_addr", cfg.Store.Addr,
	)

	redisClient := store.NewRedisClient(cfg.Store)
	defer redisClient.Close()

	resilientStore, err := store.New(redisClient, cfg.Retry, logger)
	if err != nil {
		logger.Error("failed to build store", "error", err)
		os.Exit(1)
	}

	guard := auth.NewGuard(cfg.Auth)
	dispatcher := application.NewDispatcher(guard, resilientStore, logger)

	h := rest.NewHandler(dispatcher, logger)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	router := http.Handler(mux)

	handler := middleware.Recovery(logger)(router)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
