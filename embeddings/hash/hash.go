// Package hash provides a deterministic, non-semantic embedder: each
// text maps to a pseudo-random unit vector seeded by its FNV hash.
// Identical texts always land on identical vectors, distinct texts on
// essentially uncorrelated ones, so similarity ranking is arbitrary
// but stable. It stands in for a real embedding model in local runs
// and tests.
package hash

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"github.com/thunai-ai/thunai/embeddings"
)

// DefaultDimension matches the placeholder vector size the assistant
// was originally tuned with.
const DefaultDimension = 384

// Embedder is the deterministic hashing embedder.
type Embedder struct {
	dimension int
}

var _ embeddings.Embedder = (*Embedder)(nil)

// Option configures the embedder.
type Option func(*Embedder)

// WithDimension overrides the vector size.
func WithDimension(dimension int) Option {
	return func(e *Embedder) {
		if dimension > 0 {
			e.dimension = dimension
		}
	}
}

// New creates a hashing embedder.
func New(opts ...Option) *Embedder {
	e := &Embedder{dimension: DefaultDimension}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EmbedDocuments embeds each text independently.
func (e *Embedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = e.vector(text)
	}
	return vectors, nil
}

// EmbedQuery embeds a single text.
func (e *Embedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return e.vector(text), nil
}

// GetDimension returns the configured vector size.
func (e *Embedder) GetDimension(_ context.Context) (int, error) {
	return e.dimension, nil
}

// vector derives an L2-normalized pseudo-random vector from the text.
func (e *Embedder) vector(text string) []float32 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	vec := make([]float32, e.dimension)
	var norm float64
	for i := range vec {
		v := rng.NormFloat64()
		vec[i] = float32(v)
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return vec
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}
