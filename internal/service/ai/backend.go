package ai

import (
	"context"
	"fmt"

	"github.com/zhouzirui/moodchat/backend/internal/config"
)

// NewBackend builds the backend selected by cfg.Provider. It is called once
// per process and the result is shared by every session.
func NewBackend(ctx context.Context, cfg config.AIConfig) (Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIBackend(cfg.APIKey, cfg.BaseURL), nil
	case config.ProviderGemini:
		return NewGeminiBackend(ctx, cfg.APIKey, cfg.BaseURL)
	case config.ProviderArk:
		chatModel, err := cfg.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}
		return NewChainBackend(ctx, chatModel)
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}

// NewGeneratorFromConfig wires a backend and a Generator from configuration.
func NewGeneratorFromConfig(ctx context.Context, cfg config.AIConfig) (*Generator, error) {
	backend, err := NewBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewGenerator(backend, Options{
		Model:        cfg.Model,
		Temperature:  cfg.Temperature,
		MaxTokens:    cfg.MaxTokens,
		HistoryLimit: cfg.HistoryLimit,
		Timeout:      cfg.Timeout,
	}), nil
}
