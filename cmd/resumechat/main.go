// Command resumechat answers questions about a resume with retrieval-augmented generation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/resumechat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/resumechat/internal/adapters/driving/cli"
	"github.com/custodia-labs/resumechat/internal/app"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
	"github.com/custodia-labs/resumechat/internal/core/services"
	"github.com/custodia-labs/resumechat/internal/logger"
	"github.com/custodia-labs/resumechat/internal/metrics"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var provider *app.Provider
	defer func() {
		if provider == nil {
			return
		}
		if err := provider.Close(); err != nil {
			logger.Warn("closing services: %v", err)
		}
	}()

	cli.SetVersion(version)
	cli.SetBootstrap(func(configDir string) (driving.SettingsService, cli.Services, error) {
		store, err := file.NewConfigStore(configDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening config: %w", err)
		}
		settings := services.NewSettingsService(store)
		provider = app.NewProvider(settings, metrics.New())
		return settings, provider, nil
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
