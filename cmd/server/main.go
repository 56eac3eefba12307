package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visionchat/internal/config"
	"visionchat/internal/handlers"
	"visionchat/internal/logging"
	"visionchat/internal/router"
	"visionchat/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Logger initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("🚀 Starting VisionChat relay...")
	logger.Infow("✓ Environment variables loaded", "env", cfg.Env, "provider", cfg.Provider)

	// ──── Step 2: Initialize Upstream Provider ────
	provider, err := services.NewProvider(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatalw("✗ AI provider initialization failed", "error", err)
	}
	defer provider.Close()
	logger.Infow("✓ AI provider initialized", "provider", provider.Name())

	// ──── Step 3: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(provider, logger)
	r := router.New(chatHandler, provider.Name(), cfg.IsProduction(), logger)

	// No write timeout: a vision completion can take a while.
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Errorw("graceful shutdown failed", "error", err)
		}
	}()

	logger.Infof("✅ Server is purring on http://localhost:%s (using %s)", cfg.Port, provider.Name())

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("Server error", "error", err)
	}
	logger.Info("shutdown complete")
}
