package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const notSet = "(not set)"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change resumechat configuration.

Settings live in config.toml inside the configuration directory. The
environment variables OPENAI_API_KEY, PINECONE_API_KEY, RESUMECHAT_DOCUMENT
and RESUMECHAT_INDEX override the file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Validates and stores one configuration value.

Run "resumechat config keys" to list the recognised keys.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List configuration keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w (fix with 'resumechat config set <key> <value>')", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Document]")
	cmd.Printf("  Path: %s\n", settings.Document.Path)
	cmd.Printf("  Chunk size: %d\n", settings.Chunking.Size)
	cmd.Printf("  Overlap: %d\n", settings.Chunking.Overlap)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	cmd.Printf("  Base URL: %s\n", settings.Embedding.BaseURL)
	cmd.Printf("  API Key: %s\n", displayKey(settings.Embedding.APIKey))
	cmd.Printf("  Timeout: %s\n", settings.Embedding.Timeout)
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Embedding.IsConfigured()))
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	cmd.Printf("  API Key: %s\n", displayKey(settings.LLM.APIKey))
	cmd.Printf("  Timeout: %s\n", settings.LLM.Timeout)
	cmd.Printf("  Status: %s\n", configuredStatus(settings.LLM.IsConfigured()))
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Backend: %s\n", settings.Index.Backend.Description())
	cmd.Printf("  Name: %s\n", settings.Index.Name)
	if settings.Index.Backend.RequiresAPIKey() {
		cmd.Printf("  Namespace: %s\n", orNotSet(settings.Index.Namespace))
		cmd.Printf("  Host: %s\n", orNotSet(settings.Index.Host))
		cmd.Printf("  API Key: %s\n", displayKey(settings.Index.APIKey))
	}
	cmd.Printf("  Data dir: %s\n", settings.Index.DataDir)
	cmd.Println()

	cmd.Println("[Retrieval]")
	cmd.Printf("  Top K: %d\n", settings.Retrieval.TopK)
	cmd.Printf("  Strict fingerprint: %t\n", settings.Retrieval.Strict)
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Concurrency: %d\n", settings.Ingest.Concurrency)
	cmd.Printf("  Requests/second: %s\n", rateLimit(settings.Ingest.RequestsPerSecond))
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	cmd.Printf("  Request timeout: %s\n", settings.Server.RequestTimeout.Round(time.Second))
	cmd.Println()

	cmd.Printf("Log level: %s\n", settings.LogLevel)
	cmd.Printf("Config file: %s\n", settingsService.Path())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	shown := value
	if isSecretKey(key) {
		shown = maskAPIKey(value)
	}
	cmd.Printf("Set %s = %s\n", key, shown)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	cmd.Println(settingsService.Path())
	return nil
}

func isSecretKey(key string) bool {
	switch key {
	case "embedding.api_key", "llm.api_key", "index.api_key":
		return true
	default:
		return false
	}
}

func displayKey(key string) string {
	if key == "" {
		return notSet
	}
	return maskAPIKey(key)
}

func orNotSet(s string) string {
	if s == "" {
		return notSet
	}
	return s
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

func rateLimit(rps float64) string {
	if rps <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%g", rps)
}

// maskAPIKey masks an API key for display.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
