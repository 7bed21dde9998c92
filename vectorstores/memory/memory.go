// Package memory is an in-process vector store using brute-force
// cosine similarity, the default backend for local runs and tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/thunai-ai/thunai/embeddings"
	"github.com/thunai-ai/thunai/schema"
	"github.com/thunai-ai/thunai/vectorstores"
)

var (
	ErrMissingEmbedder   = errors.New("memory: embedder is required")
	ErrDimensionMismatch = errors.New("memory: vector dimension mismatch")
)

// Store keeps documents and their vectors in memory.
type Store struct {
	embedder embeddings.Embedder

	mu      sync.RWMutex
	docs    []schema.Document
	vectors [][]float32
	idSeq   int
}

var _ vectorstores.VectorStore = (*Store)(nil)

// New creates an empty in-memory store over the given embedder.
func New(embedder embeddings.Embedder) (*Store, error) {
	if embedder == nil {
		return nil, ErrMissingEmbedder
	}
	return &Store{embedder: embedder}, nil
}

// AddDocuments embeds and stores the documents, returning their IDs.
func (s *Store) AddDocuments(ctx context.Context, docs []schema.Document, _ ...vectorstores.Option) ([]string, error) {
	if len(docs) == 0 {
		return []string{}, nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.PageContent
	}
	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("memory: failed to embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return nil, fmt.Errorf("memory: embedder returned %d vectors for %d documents", len(vectors), len(docs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.vectors) > 0 && len(vectors[0]) != len(s.vectors[0]) {
		return nil, ErrDimensionMismatch
	}

	ids := make([]string, len(docs))
	for i := range docs {
		ids[i] = fmt.Sprintf("mem-%d", s.idSeq)
		s.idSeq++
	}
	s.docs = append(s.docs, docs...)
	s.vectors = append(s.vectors, vectors...)
	return ids, nil
}

// SimilaritySearch returns the numDocuments nearest documents.
func (s *Store) SimilaritySearch(ctx context.Context, query string, numDocuments int, options ...vectorstores.Option) ([]schema.Document, error) {
	scored, err := s.SimilaritySearchWithScores(ctx, query, numDocuments, options...)
	if err != nil {
		return nil, err
	}
	docs := make([]schema.Document, len(scored))
	for i, ds := range scored {
		docs[i] = ds.Document
	}
	return docs, nil
}

// SimilaritySearchWithScores ranks every stored document by cosine
// similarity against the embedded query, descending. Ties keep
// insertion order.
func (s *Store) SimilaritySearchWithScores(ctx context.Context, query string, numDocuments int, options ...vectorstores.Option) ([]vectorstores.DocumentWithScore, error) {
	if numDocuments <= 0 {
		return nil, errors.New("memory: number of documents must be positive")
	}

	opts := vectorstores.ParseOptions(options...)

	queryVector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("memory: failed to embed query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]vectorstores.DocumentWithScore, 0, len(s.docs))
	for i, vec := range s.vectors {
		score := cosine(queryVector, vec)
		if opts.ScoreThreshold != nil && score < *opts.ScoreThreshold {
			continue
		}
		results = append(results, vectorstores.DocumentWithScore{
			Document: s.docs[i],
			Score:    score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if numDocuments > len(results) {
		numDocuments = len(results)
	}
	return results[:numDocuments], nil
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
