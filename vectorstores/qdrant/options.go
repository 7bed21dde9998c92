package qdrant

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/thunai-ai/thunai/embeddings"
)

const (
	defaultHost = "localhost"
	defaultPort = 6334
)

// options holds the configuration for the Qdrant store.
type options struct {
	collectionName string
	qdrantURL      url.URL
	embedder       embeddings.Embedder
	apiKey         string
	logger         *slog.Logger
}

// Option configures the Qdrant store.
type Option func(*options)

// WithCollectionName sets the collection documents are written to and
// searched in.
func WithCollectionName(name string) Option {
	return func(opts *options) {
		opts.collectionName = strings.TrimSpace(name)
	}
}

// WithURL sets the Qdrant server URL.
func WithURL(qdrantURL url.URL) Option {
	return func(opts *options) {
		opts.qdrantURL = qdrantURL
	}
}

// WithHostAndPort sets the Qdrant server host and gRPC port.
func WithHostAndPort(host string, port int) Option {
	return func(opts *options) {
		if host != "" && port > 0 {
			opts.qdrantURL = url.URL{
				Scheme: "http",
				Host:   fmt.Sprintf("%s:%d", host, port),
			}
		}
	}
}

// WithEmbedder sets the embedder used to vectorize documents and queries.
func WithEmbedder(embedder embeddings.Embedder) Option {
	return func(opts *options) {
		opts.embedder = embedder
	}
}

// WithAPIKey sets the API key for Qdrant authentication.
func WithAPIKey(apiKey string) Option {
	return func(opts *options) {
		opts.apiKey = strings.TrimSpace(apiKey)
	}
}

// WithLogger sets the logger for the Qdrant store.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		if logger != nil {
			opts.logger = logger
		}
	}
}

func parseOptions(opts ...Option) (options, error) {
	o := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.qdrantURL.Host == "" {
		o.qdrantURL = url.URL{
			Scheme: "http",
			Host:   fmt.Sprintf("%s:%d", defaultHost, defaultPort),
		}
	}

	if o.collectionName == "" {
		return o, errors.New("collection name is required")
	}
	if o.embedder == nil {
		return o, ErrMissingEmbedder
	}
	return o, nil
}
