// Package fake provides an in-memory vector store test double with
// deterministic insertion-order search results.
package fake

import (
	"context"
	"fmt"

	"github.com/thunai-ai/thunai/schema"
	"github.com/thunai-ai/thunai/vectorstores"
)

// Store is an in-memory vector store for testing. SimilaritySearch
// returns documents in insertion order with a faked score of 1.0.
type Store struct {
	docs      []schema.Document
	idSeq     int
	ErrToAdd  error
	ErrToFind error
}

var _ vectorstores.VectorStore = (*Store)(nil)

// New returns an empty fake store.
func New() *Store {
	return &Store{}
}

// AddDocuments appends documents to the store.
func (s *Store) AddDocuments(_ context.Context, docs []schema.Document, _ ...vectorstores.Option) ([]string, error) {
	if s.ErrToAdd != nil {
		return nil, s.ErrToAdd
	}
	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = fmt.Sprintf("fake-id-%d", s.idSeq)
		s.docs = append(s.docs, doc)
		s.idSeq++
	}
	return ids, nil
}

// SimilaritySearch returns the first numDocuments documents in
// insertion order.
func (s *Store) SimilaritySearch(_ context.Context, _ string, numDocuments int, _ ...vectorstores.Option) ([]schema.Document, error) {
	if s.ErrToFind != nil {
		return nil, s.ErrToFind
	}
	if numDocuments > len(s.docs) {
		numDocuments = len(s.docs)
	}
	results := make([]schema.Document, numDocuments)
	copy(results, s.docs[:numDocuments])
	return results, nil
}

// SimilaritySearchWithScores returns documents with a faked score of 1.0.
func (s *Store) SimilaritySearchWithScores(ctx context.Context, query string, numDocuments int, options ...vectorstores.Option) ([]vectorstores.DocumentWithScore, error) {
	docs, err := s.SimilaritySearch(ctx, query, numDocuments, options...)
	if err != nil {
		return nil, err
	}

	results := make([]vectorstores.DocumentWithScore, len(docs))
	for i, doc := range docs {
		results[i] = vectorstores.DocumentWithScore{Document: doc, Score: 1.0}
	}
	return results, nil
}

// Docs returns all documents currently in the store.
func (s *Store) Docs() []schema.Document {
	out := make([]schema.Document, len(s.docs))
	copy(out, s.docs)
	return out
}
