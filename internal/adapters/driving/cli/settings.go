package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/journalkit/journalkit/internal/adapters/driven/ai"
	"github.com/journalkit/journalkit/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the vault location, retrieval tuning and AI
providers. Settings live in a TOML file under ~/.journalkit.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the chat provider",
	Long: `Configure the LLM backend used for chatting with your journal.
Credentials are validated against the provider before being saved.`,
	RunE: runSettingsLLM,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure the embedding provider",
	Long: `Configure the remote embedding provider used for indexing and
search. Without one, a deterministic local embedding is used.`,
	RunE: runSettingsEmbedding,
}

var settingsRetrieverCmd = &cobra.Command{
	Use:   "retriever",
	Short: "Tune retrieval parameters",
	RunE:  runSettingsRetriever,
}

var settingsVaultCmd = &cobra.Command{
	Use:   "vault [path]",
	Short: "Set the vault location",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsVault,
}

var settingsToneCmd = &cobra.Command{
	Use:   "tone [description]",
	Short: "Set the assistant's tone",
	Long: `Set the register the assistant writes in, as a short free-form
description, e.g. "supportive, non-judgmental, specific".`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsTone,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsRetrieverCmd)
	settingsCmd.AddCommand(settingsVaultCmd)
	settingsCmd.AddCommand(settingsToneCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Journal]")
	cmd.Printf("  Vault: %s\n", settings.VaultPath)
	cmd.Printf("  Tone: %s\n", settings.Tone)
	cmd.Println()

	cmd.Println("[Retriever]")
	cmd.Printf("  Context chunks (k): %d\n", settings.Retriever.K)
	cmd.Printf("  Recency boost: %.2f\n", settings.Retriever.RecencyBoost)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Model: %s\n", settings.Embedding.Model)
	if settings.Embedding.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Embedding.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	status := "configured"
	if !settings.Embedding.IsConfigured() {
		status = "not configured, using local fallback"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Backend: %s\n", settings.LLM.Backend.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	status = "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured, chat disabled"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Printf("Settings file: %s\n", settingsStore.Path())
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select Chat Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	backend := providers[idx-1]

	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[backend]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	cmd.Print("Enter API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key is required")
	}

	updated := settings.LLM
	updated.Backend = backend
	updated.Model = model
	updated.APIKey = apiKey

	cmd.Print("Validating configuration... ")
	if err := ai.ValidateLLMConfig(updated); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	settings.LLM = updated
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Printf("Chat provider configured: %s (%s)\n", backend.Description(), model)
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)

	defaultModel := settings.Embedding.Model
	if defaultModel == "" {
		defaultModel = "text-embedding-3-small"
	}
	cmd.Printf("Enter embedding model [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	cmd.Print("Enter API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return errors.New("API key is required")
	}

	updated := domain.EmbeddingSettings{Model: model, APIKey: apiKey}

	cmd.Print("Validating configuration... ")
	if err := ai.ValidateEmbeddingConfig(updated); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	settings.Embedding = updated
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Printf("Embedding provider configured: %s\n", model)
	cmd.Println("Run 'journalkit index' to re-embed existing sessions with the new model.")
	return nil
}

func runSettingsRetriever(cmd *cobra.Command, _ []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Printf("Context chunks per chat reply (k) [%d]: ", settings.Retriever.K)
	if input := readLine(reader); input != "" {
		k, err := strconv.Atoi(input)
		if err != nil || k < 1 {
			return fmt.Errorf("invalid k %q", input)
		}
		settings.Retriever.K = k
	}

	cmd.Printf("Recency boost weight [%.2f]: ", settings.Retriever.RecencyBoost)
	if input := readLine(reader); input != "" {
		boost, err := strconv.ParseFloat(input, 64)
		if err != nil || boost < 0 {
			return fmt.Errorf("invalid recency boost %q", input)
		}
		settings.Retriever.RecencyBoost = boost
	}

	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Println("Retriever settings saved.")
	return nil
}

func runSettingsVault(cmd *cobra.Command, args []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}

	settings.VaultPath = args[0]
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Printf("Vault path set to %s\n", args[0])
	cmd.Println("Run 'journalkit index' to index sessions from the new vault.")
	return nil
}

func runSettingsTone(cmd *cobra.Command, args []string) error {
	if err := ensureSettings(); err != nil {
		return err
	}

	settings.Tone = args[0]
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Printf("Tone set to: %s\n", args[0])
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
