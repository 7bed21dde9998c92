package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunai-ai/thunai/schema"
	"github.com/thunai-ai/thunai/vectorstores"
	"github.com/thunai-ai/thunai/vectorstores/memory"
)

// stubEmbedder returns fixed vectors per text so similarity ordering
// is fully controlled by the test.
type stubEmbedder struct {
	vectors map[string][]float32
}

func (s *stubEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, ok := s.vectors[t]
		if !ok {
			return nil, errors.New("unknown text")
		}
		out[i] = vec
	}
	return out, nil
}

func (s *stubEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (s *stubEmbedder) GetDimension(context.Context) (int, error) { return 2, nil }

func TestStore(t *testing.T) {
	ctx := context.Background()

	emb := &stubEmbedder{vectors: map[string][]float32{
		"east":      {1, 0},
		"northeast": {1, 1},
		"north":     {0, 1},
		"west":      {-1, 0},
		"query":     {1, 0.1},
	}}

	newStore := func(t *testing.T) *memory.Store {
		t.Helper()
		store, err := memory.New(emb)
		require.NoError(t, err)
		_, err = store.AddDocuments(ctx, []schema.Document{
			{PageContent: "north"},
			{PageContent: "northeast"},
			{PageContent: "east"},
		})
		require.NoError(t, err)
		return store
	}

	t.Run("requires an embedder", func(t *testing.T) {
		_, err := memory.New(nil)
		assert.ErrorIs(t, err, memory.ErrMissingEmbedder)
	})

	t.Run("ranks by cosine similarity descending", func(t *testing.T) {
		store := newStore(t)

		results, err := store.SimilaritySearchWithScores(ctx, "query", 3)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "east", results[0].Document.PageContent)
		assert.Equal(t, "northeast", results[1].Document.PageContent)
		assert.Equal(t, "north", results[2].Document.PageContent)
		assert.Greater(t, results[0].Score, results[1].Score)
	})

	t.Run("caps results at numDocuments", func(t *testing.T) {
		store := newStore(t)

		docs, err := store.SimilaritySearch(ctx, "query", 2)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "east", docs[0].PageContent)
	})

	t.Run("negative similarity is still returned without a threshold", func(t *testing.T) {
		store, err := memory.New(emb)
		require.NoError(t, err)
		_, err = store.AddDocuments(ctx, []schema.Document{
			{PageContent: "west"},
			{PageContent: "north"},
		})
		require.NoError(t, err)

		results, err := store.SimilaritySearchWithScores(ctx, "query", 3)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "north", results[0].Document.PageContent)
		assert.Equal(t, "west", results[1].Document.PageContent)
		assert.Negative(t, results[1].Score)
	})

	t.Run("score threshold filters", func(t *testing.T) {
		store := newStore(t)

		results, err := store.SimilaritySearchWithScores(ctx, "query", 3,
			vectorstores.WithScoreThreshold(0.9))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "east", results[0].Document.PageContent)
	})

	t.Run("add returns sequential ids", func(t *testing.T) {
		store, err := memory.New(emb)
		require.NoError(t, err)

		ids, err := store.AddDocuments(ctx, []schema.Document{
			{PageContent: "east"}, {PageContent: "north"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"mem-0", "mem-1"}, ids)
		assert.Equal(t, 2, store.Len())
	})

	t.Run("empty add is a no-op", func(t *testing.T) {
		store, err := memory.New(emb)
		require.NoError(t, err)
		ids, err := store.AddDocuments(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}
