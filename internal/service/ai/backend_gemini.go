package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiBackend calls the Gemini API through the native GenAI SDK.
type GeminiBackend struct {
	client *genai.Client
}

// NewGeminiBackend creates the SDK client. baseURL is optional.
func NewGeminiBackend(ctx context.Context, apiKey, baseURL string) (*GeminiBackend, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientConfig.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiBackend{client: client}, nil
}

// CreateCompletion implements Backend.
func (b *GeminiBackend) CreateCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	temperature := float32(req.Temperature)
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
		Temperature:       &temperature,
		MaxOutputTokens:   int32(req.MaxTokens),
	}

	result, err := b.client.Models.GenerateContent(ctx, req.Model, toGeminiContents(req.Messages), config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if result == nil {
		return "", ErrEmptyCompletion
	}
	return result.Text(), nil
}

// toGeminiContents maps assistant turns to Gemini's "model" role.
func toGeminiContents(turns []Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		var role genai.Role = genai.RoleUser
		if turn.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}
	return contents
}
