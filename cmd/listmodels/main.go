// Command listmodels prints the model IDs the configured provider exposes.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"visionchat/internal/config"
	"visionchat/internal/logging"
	"visionchat/internal/services"
)

func main() {
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	provider, err := services.NewProvider(ctx, cfg, logger)
	if err != nil {
		logger.Fatalw("✗ AI provider initialization failed", "error", err)
	}
	defer provider.Close()

	ids, err := provider.ListModels(ctx)
	if err != nil {
		logger.Fatalw("✗ Listing models failed", "provider", provider.Name(), "error", err)
	}
	logger.Infow("✓ Models listed", "provider", provider.Name(), "count", len(ids))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ids); err != nil {
		logger.Fatalw("writing output", "error", err)
	}
}
