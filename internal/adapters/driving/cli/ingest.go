package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/resumechat/internal/core/domain"
	"github.com/custodia-labs/resumechat/internal/core/ports/driving"
	"github.com/custodia-labs/resumechat/internal/logger"
	"github.com/custodia-labs/resumechat/internal/watcher"
)

var (
	ingestWatch bool
	ingestJSON  bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Embed the resume and upsert it into the index",
	Long: `Reads the configured document (.txt or .pdf), splits it into overlapping
character windows, embeds every window and upserts the vectors into the
similarity index as chunk-0, chunk-1, ...

Vectors beyond the new chunk count are not removed when the document shrinks.

With --watch, the document is re-ingested whenever it changes until the
command is interrupted.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "re-ingest when the document changes")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	svc, err := services.Ingest()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := ingestOnce(ctx, cmd, svc); err != nil {
		return err
	}
	if !ingestWatch {
		return nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	w, err := watcher.New(settings.Document.Path, watcher.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("watching document: %w", err)
	}

	cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", w.Path())
	return w.Run(ctx, func(ctx context.Context) {
		if err := ingestOnce(ctx, cmd, svc); err != nil {
			logger.Error("re-ingest failed: %v", err)
		}
	})
}

func ingestOnce(ctx context.Context, cmd *cobra.Command, svc driving.IngestService) error {
	report, err := svc.Ingest(ctx)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	if ingestJSON {
		return outputIngestJSON(cmd, report)
	}
	cmd.Printf("Ingested %d chunks (%d dimensions) into index '%s' in %s\n",
		report.ChunkCount, report.Dimensions, report.IndexName, report.Duration.Round(time.Millisecond))
	cmd.Printf("  Run:         %s\n", report.RunID)
	cmd.Printf("  Fingerprint: %s\n", report.Fingerprint)
	return nil
}

type ingestReportJSON struct {
	RunID       string  `json:"run_id"`
	IndexName   string  `json:"index_name"`
	ChunkCount  int     `json:"chunk_count"`
	Dimensions  int     `json:"dimensions"`
	Fingerprint string  `json:"fingerprint"`
	Seconds     float64 `json:"duration_seconds"`
}

func outputIngestJSON(cmd *cobra.Command, report *domain.IngestReport) error {
	data, err := json.MarshalIndent(ingestReportJSON{
		RunID:       report.RunID,
		IndexName:   report.IndexName,
		ChunkCount:  report.ChunkCount,
		Dimensions:  report.Dimensions,
		Fingerprint: report.Fingerprint,
		Seconds:     report.Duration.Seconds(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
