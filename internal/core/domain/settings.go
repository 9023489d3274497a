package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service backend for embeddings or chat.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGrok is the x.ai API. It is OpenAI-compatible and is
	// served by the openai adapter with a different base URL.
	AIProviderGrok AIProvider = "grok"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderAnthropic, AIProviderGrok:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOpenAI:
		return "OpenAI"
	case AIProviderAnthropic:
		return "Anthropic"
	case AIProviderGrok:
		return "Grok (x.ai)"
	default:
		return unknownDescription
	}
}

// RetrieverSettings holds retrieval tuning.
type RetrieverSettings struct {
	// K is the number of chunks supplied as chat context.
	K int `toml:"k"`

	// RecencyBoost is the weight of the recency term in ranking.
	RecencyBoost float64 `toml:"recency_boost"`
}

// LLMSettings holds chat backend configuration.
type LLMSettings struct {
	// Backend is the chat provider.
	Backend AIProvider `toml:"backend"`

	// Model is the chat model name.
	Model string `toml:"model"`

	// APIKey is the provider API key.
	APIKey string `toml:"api_key"`

	// Temperature controls sampling randomness.
	Temperature float64 `toml:"temperature"`

	// TopP is the nucleus sampling parameter.
	TopP float64 `toml:"top_p"`

	// MaxTokens bounds reply length.
	MaxTokens int `toml:"max_tokens"`
}

// IsConfigured returns true if the chat backend is usable.
func (l LLMSettings) IsConfigured() bool {
	return l.Backend.IsValid() && l.APIKey != ""
}

// EmbeddingSettings holds embedding provider configuration.
// When unconfigured, indexing uses the deterministic local fallback only.
type EmbeddingSettings struct {
	// Model is the remote embedding model name.
	Model string `toml:"model"`

	// APIKey is the provider API key. Empty disables the remote path.
	APIKey string `toml:"api_key"`
}

// IsConfigured returns true if a remote embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	return e.Model != "" && e.APIKey != ""
}

// FallbackModelName is the model name recorded for embeddings produced
// by the deterministic local fallback.
const FallbackModelName = "simple"

// Settings holds all application settings.
type Settings struct {
	// VaultPath is the root of the journal vault.
	VaultPath string `toml:"vault_path"`

	// Tone steers the assistant's register in chat replies.
	Tone string `toml:"tone"`

	// Retriever holds retrieval tuning.
	Retriever RetrieverSettings `toml:"retriever"`

	// LLM holds chat backend settings.
	LLM LLMSettings `toml:"llm"`

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings `toml:"embedding"`
}

// DefaultSettings returns settings with sensible defaults. API keys are
// left empty; without them the embedder falls back to the local method
// and chat is disabled.
func DefaultSettings() Settings {
	return Settings{
		VaultPath: "~/JournalAI",
		Tone:      "supportive, non-judgmental, specific, action-oriented",
		Retriever: RetrieverSettings{
			K:            DefaultTopK,
			RecencyBoost: DefaultRecencyBoost,
		},
		LLM: LLMSettings{
			Backend:     AIProviderOpenAI,
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
			TopP:        0.9,
			MaxTokens:   1000,
		},
		Embedding: EmbeddingSettings{
			Model: "text-embedding-3-small",
		},
	}
}

// AllLLMProviders returns the providers that support chat.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderGrok,
	}
}

// DefaultLLMModels returns the default chat model for each provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGrok:      "grok-beta",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
// The local fallback always produces FallbackDimensions.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}

// FallbackDimensions is the vector size of the local fallback embedder,
// matching the OpenAI default so mixed corpora stay comparable.
const FallbackDimensions = 1536
