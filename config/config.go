// Package config loads the assistant's YAML configuration and applies
// defaults for anything left unset.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LLMConfig selects and configures the chat model backend.
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSecs int     `yaml:"timeout_secs"`
	Referer     string  `yaml:"referer"`
	Title       string  `yaml:"title"`
}

// EmbedderConfig selects and configures the text embedder.
type EmbedderConfig struct {
	Type      string `yaml:"type"`
	Model     string `yaml:"model"`
	ServerURL string `yaml:"server_url"`
	Dimension int    `yaml:"dimension"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	APIKeyEnv  string `yaml:"api_key_env"`
	Collection string `yaml:"collection"`
}

// VectorStoreConfig selects and configures the vector store backend.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// RetrievalConfig tunes how much context each answer is built from.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// MemoryConfig bounds the conversation history. A window of zero keeps
// every turn.
type MemoryConfig struct {
	Window int `yaml:"window"`
}

// Config is the root configuration.
type Config struct {
	KnowledgeFiles []string          `yaml:"knowledge_files"`
	LLM            LLMConfig         `yaml:"llm"`
	Embedder       EmbedderConfig    `yaml:"embedder"`
	VectorStore    VectorStoreConfig `yaml:"vector_store"`
	Retrieval      RetrievalConfig   `yaml:"retrieval"`
	Memory         MemoryConfig      `yaml:"memory"`
}

// Load reads the config from path. A missing file yields the defaults;
// a malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present:
// OpenRouter for generation, hashed placeholder embeddings and the
// in-memory store.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openrouter"
	}
	if cfg.LLM.APIKeyEnv == "" {
		switch cfg.LLM.Provider {
		case "gemini":
			cfg.LLM.APIKeyEnv = "GEMINI_API_KEY"
		default:
			cfg.LLM.APIKeyEnv = "OPENROUTER_API_KEY"
		}
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.7
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 1000
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 60
	}

	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "hash"
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "memory"
	}
	if cfg.VectorStore.Type == "qdrant" {
		if cfg.VectorStore.Qdrant == nil {
			cfg.VectorStore.Qdrant = &QdrantConfig{}
		}
		if cfg.VectorStore.Qdrant.Host == "" {
			cfg.VectorStore.Qdrant.Host = "localhost"
		}
		if cfg.VectorStore.Qdrant.Port == 0 {
			cfg.VectorStore.Qdrant.Port = 6334
		}
		if cfg.VectorStore.Qdrant.Collection == "" {
			cfg.VectorStore.Qdrant.Collection = "thunai_knowledge"
		}
		if cfg.VectorStore.Qdrant.APIKeyEnv == "" {
			cfg.VectorStore.Qdrant.APIKeyEnv = "QDRANT_API_KEY"
		}
	}

	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 3
	}
}

func (cfg *Config) validate() error {
	switch cfg.LLM.Provider {
	case "openrouter", "gemini":
	default:
		return fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}

	switch cfg.Embedder.Type {
	case "hash", "ollama":
	default:
		return fmt.Errorf("unknown embedder type %q", cfg.Embedder.Type)
	}

	switch cfg.VectorStore.Type {
	case "memory", "qdrant":
	default:
		return fmt.Errorf("unknown vector store type %q", cfg.VectorStore.Type)
	}

	if cfg.Retrieval.TopK < 0 {
		return errors.New("retrieval top_k cannot be negative")
	}
	if cfg.Memory.Window < 0 {
		return errors.New("memory window cannot be negative")
	}
	return nil
}

// APIKey resolves the LLM API key from the configured environment
// variable.
func (cfg *Config) APIKey() string {
	return os.Getenv(cfg.LLM.APIKeyEnv)
}
