package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/resumechat/internal/adapters/driving/api"
	"github.com/custodia-labs/resumechat/internal/logger"
)

var (
	serveAddr   string
	serveIngest bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP chat API",
	Long: `Starts the HTTP API:

  POST /chat      {"query": "..."} -> {"response": "...", "prompt": "..."}
  GET  /healthz   liveness probe
  GET  /metrics   Prometheus metrics

The listen address and per-request timeout come from server.addr and
server.request_timeout_seconds unless --addr is given.

The memory index backend only lives as long as the process, so use --ingest
to index the document before serving when index.backend is memory.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveIngest, "ingest", false, "ingest the document before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if serveIngest {
		ingest, err := services.Ingest()
		if err != nil {
			return err
		}
		if err := ingestOnce(ctx, cmd, ingest); err != nil {
			return err
		}
	}

	chat, err := services.Chat()
	if err != nil {
		return err
	}

	cfg := api.Config{
		Addr:           settings.Server.Addr,
		RequestTimeout: settings.Server.RequestTimeout,
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	server := api.NewServer(cfg, chat, services.Metrics())
	logger.Info("chat API listening on %s", cfg.Addr)
	return server.Run(ctx)
}
