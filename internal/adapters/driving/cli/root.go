// Package cli is the cobra command-line driving adapter for resumechat.
//
// Commands reach the core through package-level services. The binary sets a
// Bootstrap that builds them once --config-dir is known; tests assign them
// directly.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
	"github.com/custodia-labs/resumechat/internal/logger"
	"github.com/custodia-labs/resumechat/internal/metrics"
)

// Services builds the request-path services on first use.
type Services interface {
	Ingest() (driving.IngestService, error)
	Chat() (driving.ChatService, error)
	Metrics() *metrics.Recorder
}

// Bootstrap builds the settings service and services for a config directory.
// An empty configDir selects the default location.
type Bootstrap func(configDir string) (driving.SettingsService, Services, error)

var (
	version = "dev"

	bootstrap       Bootstrap
	settingsService driving.SettingsService
	services        Services

	configDir string
	verbose   bool
)

var errNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "resumechat",
	Short: "Chat with a resume",
	Long: `resumechat answers questions about a resume using retrieval-augmented generation.

The resume is split into overlapping character windows, embedded, and stored in
a similarity index by "resumechat ingest". Questions asked through "ask", the
HTTP API ("serve") or the MCP server are embedded the same way, matched against
the index, and answered by a chat model using the matching windows as context.

Ingestion into the same index from two processes at once is not coordinated;
the last writer wins for each chunk identifier.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"configuration directory (default ~/.resumechat)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets how services are built before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func initServices(_ *cobra.Command, _ []string) error {
	if settingsService == nil && bootstrap != nil {
		s, svc, err := bootstrap(configDir)
		if err != nil {
			return err
		}
		settingsService = s
		services = svc
	}
	applyLogLevel()
	return nil
}

// applyLogLevel sets the logger from log.level unless --verbose was given.
// Invalid settings are left for the command that needs them to report.
func applyLogLevel() {
	if verbose {
		logger.SetVerbose(true)
		return
	}
	if settingsService == nil {
		return
	}
	settings, err := settingsService.Get()
	if err != nil {
		return
	}
	level, err := logger.ParseLevel(settings.LogLevel)
	if err != nil {
		logger.Warn("ignoring log.level: %v", err)
		return
	}
	logger.SetLevel(level)
}

func requireServices() error {
	if services == nil || settingsService == nil {
		return errNotConfigured
	}
	return nil
}
