package hash_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunai-ai/thunai/embeddings/hash"
)

func TestEmbedder(t *testing.T) {
	ctx := context.Background()

	t.Run("deterministic per text", func(t *testing.T) {
		e := hash.New()
		a, err := e.EmbedQuery(ctx, "ration card")
		require.NoError(t, err)
		b, err := e.EmbedQuery(ctx, "ration card")
		require.NoError(t, err)
		assert.Equal(t, a, b)

		c, err := e.EmbedQuery(ctx, "pension scheme")
		require.NoError(t, err)
		assert.NotEqual(t, a, c)
	})

	t.Run("dimension", func(t *testing.T) {
		e := hash.New()
		dim, err := e.GetDimension(ctx)
		require.NoError(t, err)
		assert.Equal(t, hash.DefaultDimension, dim)

		vec, err := e.EmbedQuery(ctx, "text")
		require.NoError(t, err)
		assert.Len(t, vec, hash.DefaultDimension)

		small := hash.New(hash.WithDimension(16))
		vec, err = small.EmbedQuery(ctx, "text")
		require.NoError(t, err)
		assert.Len(t, vec, 16)
	})

	t.Run("unit length", func(t *testing.T) {
		e := hash.New(hash.WithDimension(64))
		vec, err := e.EmbedQuery(ctx, "text")
		require.NoError(t, err)

		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, norm, 1e-5)
	})

	t.Run("batch matches single", func(t *testing.T) {
		e := hash.New(hash.WithDimension(32))
		batch, err := e.EmbedDocuments(ctx, []string{"one", "two"})
		require.NoError(t, err)
		require.Len(t, batch, 2)

		one, err := e.EmbedQuery(ctx, "one")
		require.NoError(t, err)
		assert.Equal(t, one, batch[0])
	})
}
