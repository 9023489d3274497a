package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/journalkit/journalkit/internal/core/domain"
)

var (
	searchLimit   int
	searchJSON    bool
	searchRecency float64
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search journal entries",
	Long: `Performs semantic search over indexed journal entries.
Results are ranked by similarity to the query with a boost for
recent entries.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultTopK, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().Float64Var(&searchRecency, "recency", -1, "recency boost weight (default from settings)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	opts := domain.SearchOptions{
		TopK:         searchLimit,
		RecencyBoost: settings.Retriever.RecencyBoost,
	}
	if searchRecency >= 0 {
		opts.RecencyBoost = searchRecency
	}

	results, err := retrieverService.Search(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		heading := results[i].Heading
		if heading == "" {
			heading = "(no heading)"
		}
		cmd.Printf("  [%d] %s - %s\n", i+1, results[i].Date, heading)
		cmd.Printf("      %s\n", snippet(results[i].Text))
		cmd.Println()
	}

	return nil
}

// snippet shortens chunk text to a single display line.
func snippet(text string) string {
	const maxLen = 120
	for i, r := range text {
		if r == '\n' {
			text = text[:i]
			break
		}
	}
	if len(text) > maxLen {
		return text[:maxLen] + "..."
	}
	return text
}
