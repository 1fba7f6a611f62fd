// Package ai turns a user message plus recent conversation into an assistant
// reply using a pluggable completion backend.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zhouzirui/moodchat/backend/internal/logger"
	"github.com/zhouzirui/moodchat/backend/internal/model/chat"
)

// FallbackReply is returned whenever the backend cannot produce a reply.
const FallbackReply = "I'm having trouble connecting right now. Please try again later. If you're in crisis, please contact emergency services or a mental health hotline immediately."

const (
	DefaultHistoryLimit = 10
	DefaultTemperature  = 0.7
	DefaultMaxTokens    = 500
	DefaultTimeout      = 30 * time.Second
)

var ErrEmptyCompletion = errors.New("backend returned an empty completion")

// CompletionRequest is everything a backend needs for one chat completion.
type CompletionRequest struct {
	SystemPrompt string
	Messages     []Turn
	Model        string
	Temperature  float64
	MaxTokens    int
}

// Backend is an external text-generation service.
type Backend interface {
	CreateCompletion(ctx context.Context, req CompletionRequest) (string, error)
}

// Options tune a Generator. Zero values fall back to the defaults above,
// except Temperature which is used as given.
type Options struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	HistoryLimit int
	Timeout      time.Duration
}

// DefaultOptions returns the production defaults for the given model.
func DefaultOptions(model string) Options {
	return Options{
		Model:        model,
		Temperature:  DefaultTemperature,
		MaxTokens:    DefaultMaxTokens,
		HistoryLimit: DefaultHistoryLimit,
		Timeout:      DefaultTimeout,
	}
}

// Reply is the generator's answer. Fallback is set when Text is FallbackReply
// because the backend failed.
type Reply struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// Generator builds prompts and recovers every backend failure into the fallback reply.
type Generator struct {
	backend Backend
	opts    Options
	log     *log.Logger
}

// NewGenerator wraps backend with the prompt and failure policy.
func NewGenerator(backend Backend, opts Options) *Generator {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultHistoryLimit
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Generator{backend: backend, opts: opts, log: logger.For("ai")}
}

// Generate never returns an error: network, auth, quota, timeout, panic and
// blank-completion failures all become FallbackReply.
func (g *Generator) Generate(ctx context.Context, message string, history []chat.Message) Reply {
	req := g.buildRequest(message, history)

	text, err := g.complete(ctx, req)
	if err != nil {
		g.log.Warn("backend unavailable, using fallback reply", "err", err, "history", len(req.Messages)-1)
		return Reply{Text: FallbackReply, Fallback: true}
	}

	g.log.Debug("generated reply", "length", len(text), "history", len(req.Messages)-1)
	return Reply{Text: text}
}

func (g *Generator) buildRequest(message string, history []chat.Message) CompletionRequest {
	return CompletionRequest{
		SystemPrompt: SystemPrompt,
		Messages:     buildTurns(history, message, g.opts.HistoryLimit),
		Model:        g.opts.Model,
		Temperature:  g.opts.Temperature,
		MaxTokens:    g.opts.MaxTokens,
	}
}

// complete runs the backend under the generator's own deadline. The call runs
// in its own goroutine so a backend that ignores ctx still cannot stall the turn.
func (g *Generator) complete(ctx context.Context, req CompletionRequest) (string, error) {
	if g.backend == nil {
		return "", errors.New("no backend configured")
	}

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("backend panic: %v", r)}
			}
		}()
		text, err := g.backend.CreateCompletion(ctx, req)
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("completion: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return "", res.err
		}
		text := strings.TrimSpace(res.text)
		if text == "" {
			return "", ErrEmptyCompletion
		}
		return text, nil
	}
}
