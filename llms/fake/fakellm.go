// Package fake provides a scripted llms.Model for tests.
package fake

import (
	"context"
	"errors"
	"sync"

	"github.com/thunai-ai/thunai/llms"
	"github.com/thunai-ai/thunai/schema"
)

// LLM cycles through predefined responses and records what it was
// asked, so tests can assert on the exact prompt.
type LLM struct {
	mu           sync.Mutex
	responses    []string
	err          error
	index        int
	lastMessages []schema.MessageContent
	lastOptions  llms.CallOptions
	callCount    int
}

var _ llms.Model = (*LLM)(nil)

// NewFakeLLM creates a fake model that replies with the given
// responses in order, wrapping around at the end.
func NewFakeLLM(responses []string) *LLM {
	return &LLM{responses: responses}
}

// FailWith makes every subsequent call return err.
func (f *LLM) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// GenerateContent returns the next predefined response in the cycle.
func (f *LLM) GenerateContent(
	_ context.Context,
	messages []schema.MessageContent,
	options ...llms.CallOption,
) (*schema.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastMessages = messages
	f.lastOptions = llms.ParseCallOptions(options...)
	f.callCount++

	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, errors.New("no responses configured")
	}

	response := f.responses[f.index]
	f.index = (f.index + 1) % len(f.responses)

	return &schema.ContentResponse{
		Choices: []*schema.ContentChoice{
			{Content: response},
		},
	}, nil
}

// Call is the single-prompt convenience form.
func (f *LLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

// LastMessages returns the messages from the most recent call.
func (f *LLM) LastMessages() []schema.MessageContent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastMessages
}

// LastOptions returns the parsed options from the most recent call.
func (f *LLM) LastOptions() llms.CallOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastOptions
}

// CallCount returns the number of times the model was called.
func (f *LLM) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callCount
}
