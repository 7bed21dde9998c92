// Package vectorstores defines the similarity-search collaborator the
// retrieval step queries for passages.
package vectorstores

import (
	"context"
	"errors"

	"github.com/thunai-ai/thunai/schema"
)

var ErrCollectionNotFound = errors.New("collection not found")

// VectorStore persists documents as vectors and searches them by
// similarity, descending.
type VectorStore interface {
	AddDocuments(ctx context.Context, docs []schema.Document, options ...Option) ([]string, error)
	SimilaritySearch(ctx context.Context, query string, numDocuments int, options ...Option) ([]schema.Document, error)
	SimilaritySearchWithScores(ctx context.Context, query string, numDocuments int, options ...Option) ([]DocumentWithScore, error)
}

// DocumentWithScore pairs a document with its similarity score.
type DocumentWithScore struct {
	Document schema.Document
	Score    float32
}

// Option configures a single store call.
type Option func(*Options)

// Options carries per-call store settings. A nil ScoreThreshold means
// no filtering: stores return the requested number of documents
// regardless of how low the scores go.
type Options struct {
	NameSpace      string
	ScoreThreshold *float32
}

// WithNameSpace targets a different collection for this call.
func WithNameSpace(namespace string) Option {
	return func(opts *Options) {
		opts.NameSpace = namespace
	}
}

// WithScoreThreshold drops results scoring below the threshold.
func WithScoreThreshold(threshold float32) Option {
	return func(opts *Options) {
		opts.ScoreThreshold = &threshold
	}
}

// ParseOptions folds the options into an Options value.
func ParseOptions(options ...Option) Options {
	opts := Options{}
	for _, option := range options {
		option(&opts)
	}
	return opts
}
