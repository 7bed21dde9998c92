package openrouter

import (
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the OpenRouter OpenAI-compatible endpoint.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel is the free Gemma tier the assistant ships with.
	DefaultModel = "google/gemma-3-27b-it:free"

	defaultTimeout = 60 * time.Second
)

type options struct {
	baseURL    string
	model      string
	referer    string
	title      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option is a function type for configuring the OpenRouter client.
type Option func(*options)

func applyOptions(opts ...Option) options {
	o := options{
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithBaseURL points the client at a different OpenAI-compatible server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithModel sets the default model for all calls.
func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.model = model
		}
	}
}

// WithAttribution sets the OpenRouter HTTP-Referer and X-Title headers.
func WithAttribution(referer, title string) Option {
	return func(o *options) {
		o.referer = referer
		o.title = title
	}
}

// WithHTTPClient allows providing a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
