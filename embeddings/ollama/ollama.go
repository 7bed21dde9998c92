// Package ollama implements embeddings.Embedder against a local
// Ollama server, for installs that want genuine semantic similarity
// instead of the hashing placeholder.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/thunai-ai/thunai/embeddings"
)

const (
	// DefaultServerURL is the standard local Ollama endpoint.
	DefaultServerURL = "http://127.0.0.1:11434"
	// DefaultModel is the embedding model used when none is configured.
	DefaultModel = "nomic-embed-text"

	defaultTimeout = 2 * time.Minute
)

var ErrIncompleteEmbedding = errors.New("ollama: not all input texts were embedded")

// Embedder calls the Ollama /api/embed endpoint.
type Embedder struct {
	baseURL    *url.URL
	model      string
	httpClient *http.Client
	logger     *slog.Logger

	dimension int
	dimErr    error
	dimOnce   sync.Once
}

var _ embeddings.Embedder = (*Embedder)(nil)

// Option configures the embedder.
type Option func(*Embedder)

// WithModel sets the embedding model.
func WithModel(model string) Option {
	return func(e *Embedder) {
		if model != "" {
			e.model = model
		}
	}
}

// WithHTTPClient allows providing a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Embedder) {
		if client != nil {
			e.httpClient = client
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Embedder) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Ollama embedder. The server URL falls back to the
// OLLAMA_URL environment variable, then to the local default.
func New(serverURL string, opts ...Option) (*Embedder, error) {
	if serverURL == "" {
		serverURL = os.Getenv("OLLAMA_URL")
	}
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	baseURL, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("ollama: invalid server URL: %w", err)
	}

	e := &Embedder{
		baseURL:    baseURL,
		model:      DefaultModel,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "ollama_embedder", "model", e.model)
	return e, nil
}

// EmbedDocuments embeds the whole batch in a single request.
func (e *Embedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	req := &api.EmbedRequest{Model: e.model, Input: texts}
	resp, err := e.embed(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) != len(texts) {
		e.logger.ErrorContext(ctx, "embedding count mismatch",
			"expected", len(texts), "got", len(resp.Embeddings))
		return nil, ErrIncompleteEmbedding
	}
	return resp.Embeddings, nil
}

// EmbedQuery embeds a single text.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, embeddings.ErrEmptyText
	}
	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// GetDimension lazily probes the model for its vector size.
func (e *Embedder) GetDimension(ctx context.Context) (int, error) {
	e.dimOnce.Do(func() {
		vec, err := e.EmbedQuery(ctx, "dimension probe")
		if err != nil {
			e.dimErr = fmt.Errorf("ollama: failed to probe dimension: %w", err)
			return
		}
		e.dimension = len(vec)
	})
	return e.dimension, e.dimErr
}

func (e *Embedder) embed(ctx context.Context, req *api.EmbedRequest) (*api.EmbedResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("ollama: failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.baseURL.JoinPath("/api/embed").String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ollama: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ollama: embed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiError struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiError); err != nil || apiError.Error == "" {
			return nil, fmt.Errorf("ollama: API error (status %d)", resp.StatusCode)
		}
		return nil, fmt.Errorf("ollama: API error (status %d): %s", resp.StatusCode, apiError.Error)
	}

	var out api.EmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("ollama: failed to decode response: %w", err)
	}
	return &out, nil
}
