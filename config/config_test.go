package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunai-ai/thunai/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "openrouter", cfg.LLM.Provider)
		assert.Equal(t, "OPENROUTER_API_KEY", cfg.LLM.APIKeyEnv)
		assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
		assert.Equal(t, 1000, cfg.LLM.MaxTokens)
		assert.Equal(t, "hash", cfg.Embedder.Type)
		assert.Equal(t, "memory", cfg.VectorStore.Type)
		assert.Equal(t, 3, cfg.Retrieval.TopK)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
knowledge_files:
  - data/schemes.json
llm:
  provider: gemini
  model: gemini-2.5-flash
  temperature: 0.2
embedder:
  type: ollama
  model: nomic-embed-text
vector_store:
  type: qdrant
  qdrant:
    host: qdrant.internal
retrieval:
  top_k: 5
memory:
  window: 10
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, []string{"data/schemes.json"}, cfg.KnowledgeFiles)
		assert.Equal(t, "gemini", cfg.LLM.Provider)
		assert.Equal(t, "GEMINI_API_KEY", cfg.LLM.APIKeyEnv)
		assert.InDelta(t, 0.2, cfg.LLM.Temperature, 0.001)
		assert.Equal(t, 1000, cfg.LLM.MaxTokens)
		assert.Equal(t, "ollama", cfg.Embedder.Type)
		assert.Equal(t, 5, cfg.Retrieval.TopK)
		assert.Equal(t, 10, cfg.Memory.Window)

		require.NotNil(t, cfg.VectorStore.Qdrant)
		assert.Equal(t, "qdrant.internal", cfg.VectorStore.Qdrant.Host)
		assert.Equal(t, 6334, cfg.VectorStore.Qdrant.Port)
		assert.Equal(t, "thunai_knowledge", cfg.VectorStore.Qdrant.Collection)
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		path := writeConfig(t, "llm: [broken")
		_, err := config.Load(path)
		assert.Error(t, err)
	})

	t.Run("unknown provider fails", func(t *testing.T) {
		path := writeConfig(t, "llm:\n  provider: claude\n")
		_, err := config.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown llm provider")
	})

	t.Run("unknown store fails", func(t *testing.T) {
		path := writeConfig(t, "vector_store:\n  type: pinecone\n")
		_, err := config.Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown vector store")
	})

	t.Run("api key resolves from env", func(t *testing.T) {
		t.Setenv("OPENROUTER_API_KEY", "sk-test")
		cfg := config.Default()
		assert.Equal(t, "sk-test", cfg.APIKey())
	})
}
