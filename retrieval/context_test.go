package retrieval_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunai-ai/thunai/retrieval"
	"github.com/thunai-ai/thunai/schema"
	fakeretriever "github.com/thunai-ai/thunai/schema/fake"
)

func TestContextBuilderBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("merges keyword and vector results under labeled blocks", func(t *testing.T) {
		ix := retrieval.NewIndex([]schema.QARecord{rationCard})
		fr := fakeretriever.NewRetriever()
		fr.DocsToReturn = []schema.Document{
			{PageContent: "Ration cards are issued by the civil supplies department."},
			{PageContent: "Apply online at the TNPDS portal."},
		}
		builder := retrieval.NewContextBuilder(ix, fr)

		got, err := builder.Build(ctx, "how do I apply for a ration card")
		require.NoError(t, err)

		assert.Equal(t, schema.English, got.Language)
		assert.Contains(t, got.Text, "QA Context:\n")
		assert.Contains(t, got.Text, "RAG Context:\n")
		// The English side must be chosen, rendered with its literal text.
		assert.Contains(t, got.Text, "English Q: how to apply for a ration card")
		assert.Contains(t, got.Text, "English A: Visit the local taluk office with ID proof.")
		assert.Contains(t, got.Text, "Apply online at the TNPDS portal.")
		assert.Equal(t, "how do I apply for a ration card", fr.LastQuery)

		qaIdx := strings.Index(got.Text, "QA Context:")
		ragIdx := strings.Index(got.Text, "RAG Context:")
		assert.Less(t, qaIdx, ragIdx)
	})

	t.Run("tamil query renders tamil blocks first", func(t *testing.T) {
		ix := retrieval.NewIndex([]schema.QARecord{rationCard})
		builder := retrieval.NewContextBuilder(ix, fakeretriever.NewRetriever())

		got, err := builder.Build(ctx, "ரேஷன் அட்டைக்கு எப்படி விண்ணப்பிக்கலாம்")
		require.NoError(t, err)

		assert.Equal(t, schema.Tamil, got.Language)
		tamilIdx := strings.Index(got.Text, "Tamil Q:")
		englishIdx := strings.Index(got.Text, "English Q:")
		require.GreaterOrEqual(t, tamilIdx, 0)
		require.GreaterOrEqual(t, englishIdx, 0)
		assert.Less(t, tamilIdx, englishIdx)
	})

	t.Run("caps vector passages at top-k", func(t *testing.T) {
		fr := fakeretriever.NewRetriever()
		fr.DocsToReturn = []schema.Document{
			{PageContent: "p1"}, {PageContent: "p2"},
			{PageContent: "p3"}, {PageContent: "p4"},
		}
		builder := retrieval.NewContextBuilder(retrieval.NewIndex(nil), fr)

		got, err := builder.Build(ctx, "anything")
		require.NoError(t, err)
		assert.Contains(t, got.Text, "p3")
		assert.NotContains(t, got.Text, "p4")
	})

	t.Run("fewer results than top-k is fine", func(t *testing.T) {
		ix := retrieval.NewIndex([]schema.QARecord{{QuestionEN: "q", AnswerEN: "a"}})
		builder := retrieval.NewContextBuilder(ix, fakeretriever.NewRetriever())

		got, err := builder.Build(ctx, "q")
		require.NoError(t, err)
		assert.Contains(t, got.Text, "English Q: q")
	})

	t.Run("vector retriever errors propagate", func(t *testing.T) {
		fr := fakeretriever.NewRetriever()
		fr.ErrToReturn = errors.New("qdrant unreachable")
		builder := retrieval.NewContextBuilder(retrieval.NewIndex(nil), fr)

		_, err := builder.Build(ctx, "anything")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vector retrieval failed")
	})
}
