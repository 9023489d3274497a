// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	failoverembed "github.com/journalkit/journalkit/internal/adapters/driven/embedding/failover"
	localembed "github.com/journalkit/journalkit/internal/adapters/driven/embedding/local"
	openaiembed "github.com/journalkit/journalkit/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/journalkit/journalkit/internal/adapters/driven/llm/anthropic"
	openaillm "github.com/journalkit/journalkit/internal/adapters/driven/llm/openai"
	"github.com/journalkit/journalkit/internal/core/domain"
	"github.com/journalkit/journalkit/internal/core/ports/driven"
	"github.com/journalkit/journalkit/internal/logger"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// GrokBaseURL is the xAI OpenAI-compatible endpoint.
const GrokBaseURL = "https://api.x.ai/v1"

// NewEmbeddingService builds the embedding service for the given
// settings. The result always embeds: a configured OpenAI backend is
// wrapped in a failover to the local fallback, and an unconfigured one
// yields the fallback alone.
func NewEmbeddingService(settings domain.EmbeddingSettings) driven.EmbeddingService {
	fallback := localembed.NewEmbeddingService()

	if !settings.IsConfigured() {
		return failoverembed.NewEmbeddingService(nil, fallback)
	}

	primary, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey: settings.APIKey,
		Model:  settings.Model,
	})
	if err != nil {
		logger.Warn("embedding service unavailable, using local fallback: %v", err)
		return failoverembed.NewEmbeddingService(nil, fallback)
	}

	return failoverembed.NewEmbeddingService(primary, fallback)
}

// NewLLMService creates the appropriate LLM service based on settings.
// Returns nil when no backend is configured; chat is then unavailable
// while indexing and search keep working.
func NewLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Backend {
	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey: settings.APIKey,
			Model:  settings.Model,
		})

	case domain.AIProviderGrok:
		// xAI exposes an OpenAI-compatible API
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: GrokBaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey: settings.APIKey,
			Model:  settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM backend: %s", settings.Backend)
	}
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
// This is intended for the settings command to validate credentials on configuration.
func ValidateLLMConfig(settings domain.LLMSettings) error {
	if !settings.IsConfigured() {
		return nil
	}

	svc, err := NewLLMService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
func ValidateEmbeddingConfig(settings domain.EmbeddingSettings) error {
	if !settings.IsConfigured() {
		return nil
	}

	svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey: settings.APIKey,
		Model:  settings.Model,
	})
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}
