package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/journalkit/journalkit/internal/core/services"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and re-index sessions as they change",
	Long: `Watches the vault's sessions tree and re-indexes a day's session
whenever its file is written. Useful alongside an editor or a sync
client that drops session files into the vault.

Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := services.NewWatcherService(sessionVault, indexerService)
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	cmd.Printf("Watching %s for session changes. Ctrl+C to stop.\n", sessionVault.Root())
	<-ctx.Done()
	cmd.Println("\nStopping.")
	return nil
}
