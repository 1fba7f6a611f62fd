package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

// ChainBackend runs an eino chain of prompt template -> chat model.
type ChainBackend struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewChainBackend compiles the chain around chatModel.
func NewChainBackend(ctx context.Context, chatModel model.BaseChatModel) (*ChainBackend, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("messages", false),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &ChainBackend{chain: runnable}, nil
}

// CreateCompletion implements Backend.
func (b *ChainBackend) CreateCompletion(ctx context.Context, req CompletionRequest) (string, error) {
	input := map[string]any{
		"system":   req.SystemPrompt,
		"messages": toSchemaMessages(req.Messages),
	}

	opts := []model.Option{
		model.WithTemperature(float32(req.Temperature)),
		model.WithMaxTokens(req.MaxTokens),
	}
	if req.Model != "" {
		opts = append(opts, model.WithModel(req.Model))
	}

	response, err := b.chain.Invoke(ctx, input, compose.WithChatModelOption(opts...))
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}
	if response == nil {
		return "", ErrEmptyCompletion
	}
	return response.Content, nil
}

func toSchemaMessages(turns []Turn) []*schema.Message {
	messages := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case RoleAssistant:
			messages = append(messages, schema.AssistantMessage(turn.Content, nil))
		default:
			messages = append(messages, schema.UserMessage(turn.Content))
		}
	}
	return messages
}
