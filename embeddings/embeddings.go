// Package embeddings defines the embedding collaborator the vector
// stores use to turn text into fixed-length vectors.
package embeddings

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyText = errors.New("text cannot be empty")

// Embedder converts text into fixed-length numeric vectors.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	GetDimension(ctx context.Context) (int, error)
}

// EmbedderImpl wraps a client with input preprocessing.
type EmbedderImpl struct {
	client Embedder
	opts   options
}

var _ Embedder = (*EmbedderImpl)(nil)

// NewEmbedder wraps the client. By default newlines are flattened to
// spaces before embedding.
func NewEmbedder(client Embedder, opts ...Option) (Embedder, error) {
	embedderOpts := options{
		StripNewLines: true,
	}
	for _, opt := range opts {
		opt(&embedderOpts)
	}

	if _, ok := client.(*EmbedderImpl); ok {
		return nil, errors.New("cannot wrap an already-wrapped EmbedderImpl")
	}

	return &EmbedderImpl{
		client: client,
		opts:   embedderOpts,
	}, nil
}

func (e *EmbedderImpl) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	return e.client.EmbedQuery(ctx, e.preprocessText(text))
}

func (e *EmbedderImpl) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	processed := make([]string, len(texts))
	for i, text := range texts {
		processed[i] = e.preprocessText(text)
	}
	return e.client.EmbedDocuments(ctx, processed)
}

func (e *EmbedderImpl) GetDimension(ctx context.Context) (int, error) {
	return e.client.GetDimension(ctx)
}

func (e *EmbedderImpl) preprocessText(text string) string {
	if e.opts.StripNewLines {
		return strings.ReplaceAll(text, "\n", " ")
	}
	return text
}
