// Package chains wires retrieval, prompting, generation and
// conversation memory into the per-query request/response cycle.
package chains

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thunai-ai/thunai/llms"
	"github.com/thunai-ai/thunai/memory"
	"github.com/thunai-ai/thunai/prompts"
	"github.com/thunai-ai/thunai/retrieval"
	"github.com/thunai-ai/thunai/schema"
)

// ErrGeneration marks a failed chat-completion call: transport error,
// quota error or malformed response. It is recoverable per query; the
// interactive loop prints it and the session continues.
var ErrGeneration = errors.New("chains: generation failed")

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1000
)

// BilingualQA answers one query at a time: detect the language, build
// the hybrid context, prompt the model, and record the completed turn.
// The conversation buffer is the only state mutated across calls, and
// only after the model call succeeds.
type BilingualQA struct {
	contexts *retrieval.ContextBuilder
	llm      llms.Model
	memory   *memory.Buffer
	options  options
	logger   *slog.Logger
}

// Option configures a BilingualQA chain.
type Option func(*options)

type options struct {
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(o *options) {
		if temperature > 0 {
			o.temperature = temperature
		}
	}
}

// WithMaxTokens overrides the reply length cap.
func WithMaxTokens(maxTokens int) Option {
	return func(o *options) {
		if maxTokens > 0 {
			o.maxTokens = maxTokens
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewBilingualQA creates the chain over a context builder, a chat
// model and a conversation buffer.
func NewBilingualQA(contexts *retrieval.ContextBuilder, llm llms.Model, buf *memory.Buffer, opts ...Option) *BilingualQA {
	o := options{
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &BilingualQA{
		contexts: contexts,
		llm:      llm,
		memory:   buf,
		options:  o,
		logger:   o.logger.With("component", "bilingual_qa"),
	}
}

// Ask runs one complete request/response cycle and returns the reply.
// On any collaborator failure the error wraps ErrGeneration and the
// conversation buffer is left untouched.
func (c *BilingualQA) Ask(ctx context.Context, query string) (string, error) {
	start := time.Now()

	retrieved, err := c.contexts.Build(ctx, query)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	systemPrompt := prompts.BilingualAssistantPrompt.Format(map[string]string{
		"language": retrieved.Language.String(),
		"context":  retrieved.Text,
		"history":  c.memory.Transcript(),
	})

	messages := []schema.MessageContent{
		schema.NewSystemMessage(systemPrompt),
		schema.NewHumanMessage(query),
	}

	resp, err := c.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(c.options.temperature),
		llms.WithMaxTokens(c.options.maxTokens),
	)
	if err != nil {
		c.logger.ErrorContext(ctx, "chat completion failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", fmt.Errorf("%w: empty response from model", ErrGeneration)
	}

	reply := resp.Choices[0].Content
	c.memory.Save(query, reply)

	c.logger.InfoContext(ctx, "query answered",
		"language", retrieved.Language, "duration", time.Since(start),
		"reply_length", len(reply), "turns", c.memory.Len())
	return reply, nil
}
