package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/resumechat/internal/core/domain"
)

const snippetLength = 160

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Show the resume chunks closest to a query",
	Long: `Runs retrieval without generation: the query is embedded, matched against
the similarity index, and the matching chunks are printed with their scores.
Useful for checking what context "ask" would send to the chat model.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results (0 = all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := requireServices(); err != nil {
		return err
	}

	chat, err := services.Chat()
	if err != nil {
		return err
	}

	results, err := chat.Retrieve(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchTable(cmd, results)
	return nil
}

type searchResultJSON struct {
	ID    string  `json:"id"`
	Index int     `json:"index"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

func outputSearchJSON(cmd *cobra.Command, results []domain.RetrievedChunk) error {
	out := make([]searchResultJSON, 0, len(results))
	for _, r := range results {
		out = append(out, searchResultJSON{
			ID:    domain.ChunkID(r.Chunk.Index),
			Index: r.Chunk.Index,
			Score: r.Score,
			Text:  r.Chunk.Text,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.RetrievedChunk) {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, domain.ChunkID(r.Chunk.Index), r.Score)
		cmd.Printf("      %s\n", snippet(r.Chunk.Text))
	}
}

// snippet flattens whitespace and shortens text to snippetLength runes.
func snippet(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= snippetLength {
		return flat
	}
	return string(runes[:snippetLength]) + "..."
}
