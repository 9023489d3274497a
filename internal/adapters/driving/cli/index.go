package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/journalkit/journalkit/internal/core/ports/driving"
	"github.com/journalkit/journalkit/internal/logger"
)

var indexDays int

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index journal sessions from the vault",
	Long: `Reads session files from the vault and (re)builds the semantic
index over them. Re-indexing is idempotent; sessions that shrank are
pruned of stale chunks.

Without an embedding provider configured, a deterministic local
embedding is used so indexing always works offline.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().IntVar(&indexDays, "days", 365, "how many days back to index")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	logger.Section("Index Vault")
	logger.Debug("Vault: %s", sessionVault.Root())

	sessions, err := sessionVault.RecentSessions(cmd.Context(), indexDays)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(sessions) == 0 {
		cmd.Println("No sessions found in the vault.")
		return nil
	}

	indexed := 0
	for i := range sessions {
		s := &sessions[i]
		meta := driving.DocumentMeta{
			Title: s.Meta.Date,
			Date:  s.Meta.Date,
		}
		if err := indexerService.IndexDocument(cmd.Context(), s.Path, s.Content, meta); err != nil {
			return fmt.Errorf("indexing %s: %w", s.Meta.Date, err)
		}
		indexed++
	}

	cmd.Printf("Indexed %d session(s).\n", indexed)
	return nil
}
