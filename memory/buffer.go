// Package memory keeps the ordered log of past conversation turns that
// gets replayed into every prompt.
package memory

import (
	"strings"
	"sync"
)

// Turn is one completed (input, output) exchange.
type Turn struct {
	Input  string
	Output string
}

// Buffer is an append-only conversation log. The zero window keeps
// every turn for the process lifetime; a positive window keeps only
// the most recent turns. A mutex guards the slice so a concurrent
// surface can share one buffer per conversation safely.
type Buffer struct {
	mu     sync.Mutex
	turns  []Turn
	window int
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithWindow caps the buffer at the most recent n turns. n <= 0 keeps
// the buffer unbounded.
func WithWindow(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.window = n
		}
	}
}

// NewBuffer creates an empty conversation buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Save appends a completed turn in arrival order.
func (b *Buffer) Save(input, output string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.turns = append(b.turns, Turn{Input: input, Output: output})
	if b.window > 0 && len(b.turns) > b.window {
		b.turns = b.turns[len(b.turns)-b.window:]
	}
}

// Turns returns a copy of the stored turns in arrival order.
func (b *Buffer) Turns() []Turn {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Turn, len(b.turns))
	copy(out, b.turns)
	return out
}

// Len returns the number of stored turns.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.turns)
}

// Transcript renders the buffer as the Human/AI transcript embedded in
// the system prompt.
func (b *Buffer) Transcript() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var sb strings.Builder
	for i, turn := range b.turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Human: ")
		sb.WriteString(turn.Input)
		sb.WriteString("\nAI: ")
		sb.WriteString(turn.Output)
	}
	return sb.String()
}
