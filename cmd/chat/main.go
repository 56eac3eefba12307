package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"visionchat/internal/chat"
	"visionchat/internal/config"
	"visionchat/internal/gateway"
	"visionchat/internal/logging"
	"visionchat/internal/ui"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewFile(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Logger initialization failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := gateway.New(cfg.RelayURL, logger)
	store := chat.NewStore()
	session := chat.NewSession(store, client, client.BaseURL())

	logger.Infow("chat client starting", "relay", client.BaseURL())

	if err := ui.New(store, session, client.BaseURL(), logger).Run(ctx); err != nil {
		logger.Errorw("terminal UI failed", "error", err)
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}
}
