// Package openrouter implements llms.Model against an OpenAI-compatible
// chat-completions endpoint, with OpenRouter defaults.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/thunai-ai/thunai/llms"
	"github.com/thunai-ai/thunai/schema"
)

var (
	ErrNoAPIKey      = errors.New("openrouter: API key is required")
	ErrEmptyResponse = errors.New("openrouter: empty response received")
	ErrNoMessages    = errors.New("openrouter: no messages provided")
)

// LLM is a chat-completions client for OpenRouter or any
// OpenAI-compatible server.
type LLM struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	options    options
	logger     *slog.Logger
}

var _ llms.Model = (*LLM)(nil)

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// New creates a new OpenRouter chat client. The API key is mandatory.
func New(apiKey string, opts ...Option) (*LLM, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	o := applyOptions(opts...)

	llm := &LLM{
		baseURL:    o.baseURL,
		apiKey:     apiKey,
		httpClient: o.httpClient,
		options:    o,
		logger:     o.logger.With("component", "openrouter_llm", "model", o.model),
	}

	llm.logger.Info("OpenRouter LLM initialized")
	return llm, nil
}

// Call is the single-prompt convenience form.
func (c *LLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c, prompt, options...)
}

// GenerateContent sends the message sequence to /chat/completions and
// returns the first choice. Transport failures, non-2xx statuses and
// malformed bodies all surface as errors; there are no retries.
func (c *LLM) GenerateContent(
	ctx context.Context,
	messages []schema.MessageContent,
	options ...llms.CallOption,
) (*schema.ContentResponse, error) {
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}

	opts := llms.ParseCallOptions(options...)
	model := c.options.model
	if opts.Model != "" {
		model = opts.Model
	}

	reqBody := chatRequest{
		Model:       model,
		Messages:    convertMessages(messages),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("openrouter: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openrouter: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.options.referer != "" {
		req.Header.Set("HTTP-Referer", c.options.referer)
	}
	if c.options.title != "" {
		req.Header.Set("X-Title", c.options.title)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "chat completion request failed", "error", err)
		return nil, fmt.Errorf("openrouter: request failed: %w", err)
	}
	defer resp.Body.Close()

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("openrouter: failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if out.Error != nil && out.Error.Message != "" {
			return nil, fmt.Errorf("openrouter: %s: %s", resp.Status, out.Error.Message)
		}
		return nil, fmt.Errorf("openrouter: unexpected status %s", resp.Status)
	}

	if len(out.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	c.logger.DebugContext(ctx, "chat completion succeeded",
		"duration", time.Since(start), "reply_length", len(out.Choices[0].Message.Content))

	return &schema.ContentResponse{
		Choices: []*schema.ContentChoice{
			{
				Content:    out.Choices[0].Message.Content,
				StopReason: out.Choices[0].FinishReason,
			},
		},
	}, nil
}

func convertMessages(messages []schema.MessageContent) []chatMessage {
	out := make([]chatMessage, 0, len(messages))
	for _, mc := range messages {
		out = append(out, chatMessage{
			Role:    typeToRole(mc.Role),
			Content: mc.GetTextContent(),
		})
	}
	return out
}

func typeToRole(typ schema.ChatMessageType) string {
	switch typ {
	case schema.ChatMessageTypeSystem:
		return "system"
	case schema.ChatMessageTypeAI:
		return "assistant"
	default:
		return "user"
	}
}
