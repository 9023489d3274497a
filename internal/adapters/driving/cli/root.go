// Package cli implements the command-line interface.
// Commands are thin adapters over the driving ports; service wiring
// happens once in ensureServices and is shared by all commands.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/journalkit/journalkit/internal/adapters/driven/ai"
	"github.com/journalkit/journalkit/internal/adapters/driven/config/file"
	"github.com/journalkit/journalkit/internal/adapters/driven/storage/sqlite"
	"github.com/journalkit/journalkit/internal/adapters/driven/vault"
	"github.com/journalkit/journalkit/internal/chunker"
	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driven"
	"github.com/journalkit/journalkit/internal/core/ports/driving"
	"github.com/journalkit/journalkit/internal/core/services"
	"github.com/journalkit/journalkit/internal/logger"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

var verbose bool

// Package-level services, wired by ensureServices. Commands that only
// touch settings use settingsStore directly and skip the full stack.
var (
	settingsStore    driven.SettingsStore
	settings         domain.Settings
	journalStore     driven.JournalStore
	sessionVault     driven.SessionVault
	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
	indexerService   driving.Indexer
	retrieverService driving.Retriever
	chatService      driving.ChatService
	dictationService driving.DictationSessions
)

var rootCmd = &cobra.Command{
	Use:   "journalkit",
	Short: "A private, local-first journal with semantic search",
	Long: `JournalKit keeps your journal as plain markdown files in a local
vault and builds a semantic index over them, so you can search and
chat with your own writing.

Session files live under the vault as sessions/YYYY/MM/YYYY-MM-DD.session.md.
Indexing works without any API key via a local embedding fallback;
configure an embedding or LLM provider with 'journalkit settings' for
better retrieval and for chat.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command. It is the entry point called by main.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// ensureSettings wires the settings store and loads settings. Cheap
// enough to call from every command; idempotent.
func ensureSettings() error {
	if settingsStore != nil {
		return nil
	}

	store, err := file.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("opening settings store: %w", err)
	}

	loaded, err := store.Load()
	if err != nil {
		return fmt.Errorf("loading settings from %s: %w", store.Path(), err)
	}

	settingsStore = store
	settings = loaded
	return nil
}

// ensureServices wires the full service stack on first use.
func ensureServices() error {
	if retrieverService != nil {
		return nil
	}

	if err := ensureSettings(); err != nil {
		return err
	}

	dataDir, err := defaultDataDir()
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening journal store: %w", err)
	}
	journalStore = store

	v, err := vault.New(settings.VaultPath)
	if err != nil {
		return fmt.Errorf("opening vault %s: %w", settings.VaultPath, err)
	}
	sessionVault = v

	embeddingService = ai.NewEmbeddingService(settings.Embedding)
	logger.Debug("Embedding model: %s (%d dimensions)",
		embeddingService.ModelName(), embeddingService.Dimensions())

	llmService, err = ai.NewLLMService(settings.LLM)
	if err != nil {
		return fmt.Errorf("creating LLM service: %w", err)
	}

	indexerService = services.NewIndexerService(journalStore, embeddingService, chunker.New())
	retrieverService = services.NewRetrieverService(journalStore, embeddingService)
	chatService = services.NewChatService(retrieverService, llmService, settings)
	dictationService = services.NewDictationService()

	return nil
}

func closeServices() {
	if llmService != nil {
		_ = llmService.Close()
	}
	if embeddingService != nil {
		_ = embeddingService.Close()
	}
	if journalStore != nil {
		_ = journalStore.Close()
	}
}

// defaultDataDir returns ~/.journalkit/data, creating it if needed.
func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	dir := filepath.Join(home, ".journalkit", "data")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return dir, nil
}

// errChatUnavailable is returned by chat commands when no LLM backend
// is configured.
var errChatUnavailable = errors.New(
	"chat requires an LLM provider; run 'journalkit settings llm' to configure one")
