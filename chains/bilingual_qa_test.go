package chains_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunai-ai/thunai/chains"
	"github.com/thunai-ai/thunai/llms/fake"
	"github.com/thunai-ai/thunai/memory"
	"github.com/thunai-ai/thunai/retrieval"
	"github.com/thunai-ai/thunai/schema"
	fakeretriever "github.com/thunai-ai/thunai/schema/fake"
)

var kb = []schema.QARecord{
	{
		QuestionEN: "how to apply for a ration card",
		AnswerEN:   "Visit the local taluk office with ID proof.",
		QuestionTA: "ரேஷன் அட்டைக்கு எப்படி விண்ணப்பிக்கலாம்",
		AnswerTA:   "உள்ளூர் தாலுகா அலுவலகத்தில் அடையாள சான்று உடன் செல்லவும்.",
	},
}

func newChain(llm *fake.LLM, buf *memory.Buffer, opts ...chains.Option) *chains.BilingualQA {
	fr := fakeretriever.NewRetriever()
	fr.DocsToReturn = []schema.Document{{PageContent: "TNPDS portal passage"}}
	builder := retrieval.NewContextBuilder(retrieval.NewIndex(kb), fr)
	return chains.NewBilingualQA(builder, llm, buf, opts...)
}

func TestBilingualQAAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("successful turn is recorded and prompt carries everything", func(t *testing.T) {
		llm := fake.NewFakeLLM([]string{"Visit the taluk office."})
		buf := memory.NewBuffer()
		chain := newChain(llm, buf)

		reply, err := chain.Ask(ctx, "how do I apply for a ration card")
		require.NoError(t, err)
		assert.Equal(t, "Visit the taluk office.", reply)

		turns := buf.Turns()
		require.Len(t, turns, 1)
		assert.Equal(t, "how do I apply for a ration card", turns[0].Input)
		assert.Equal(t, "Visit the taluk office.", turns[0].Output)

		messages := llm.LastMessages()
		require.Len(t, messages, 2)
		assert.Equal(t, schema.ChatMessageTypeSystem, messages[0].Role)
		assert.Equal(t, schema.ChatMessageTypeHuman, messages[1].Role)
		assert.Equal(t, "how do I apply for a ration card", messages[1].GetTextContent())

		system := messages[0].GetTextContent()
		assert.Contains(t, system, "You MUST respond in: english")
		assert.Contains(t, system, "English Q: how to apply for a ration card")
		assert.Contains(t, system, "English A: Visit the local taluk office with ID proof.")
		assert.Contains(t, system, "TNPDS portal passage")

		opts := llm.LastOptions()
		assert.Equal(t, 0.7, opts.Temperature)
		assert.Equal(t, 1000, opts.MaxTokens)
	})

	t.Run("tamil query gets a tamil directive", func(t *testing.T) {
		llm := fake.NewFakeLLM([]string{"சரி"})
		chain := newChain(llm, memory.NewBuffer())

		_, err := chain.Ask(ctx, "ரேஷன் அட்டைக்கு எப்படி விண்ணப்பிக்கலாம்")
		require.NoError(t, err)

		system := llm.LastMessages()[0].GetTextContent()
		assert.Contains(t, system, "You MUST respond in: tamil")
	})

	t.Run("prior transcript is embedded in later prompts", func(t *testing.T) {
		llm := fake.NewFakeLLM([]string{"first reply", "second reply"})
		buf := memory.NewBuffer()
		chain := newChain(llm, buf)

		_, err := chain.Ask(ctx, "first question")
		require.NoError(t, err)
		_, err = chain.Ask(ctx, "second question")
		require.NoError(t, err)

		system := llm.LastMessages()[0].GetTextContent()
		assert.Contains(t, system, "Human: first question\nAI: first reply")
		assert.Equal(t, 2, buf.Len())
	})

	t.Run("model failure leaves history unchanged", func(t *testing.T) {
		llm := fake.NewFakeLLM(nil)
		llm.FailWith(errors.New("quota exceeded"))
		buf := memory.NewBuffer()
		chain := newChain(llm, buf)

		_, err := chain.Ask(ctx, "any question")
		require.Error(t, err)
		assert.ErrorIs(t, err, chains.ErrGeneration)
		assert.Contains(t, err.Error(), "quota exceeded")
		assert.Zero(t, buf.Len())
	})

	t.Run("retrieval failure is a generation error and skips the model", func(t *testing.T) {
		llm := fake.NewFakeLLM([]string{"unused"})
		fr := fakeretriever.NewRetriever()
		fr.ErrToReturn = errors.New("vector store down")
		builder := retrieval.NewContextBuilder(retrieval.NewIndex(kb), fr)
		buf := memory.NewBuffer()
		chain := chains.NewBilingualQA(builder, llm, buf)

		_, err := chain.Ask(ctx, "any question")
		require.Error(t, err)
		assert.ErrorIs(t, err, chains.ErrGeneration)
		assert.Zero(t, llm.CallCount())
		assert.Zero(t, buf.Len())
	})

	t.Run("N successes give N turns in order", func(t *testing.T) {
		llm := fake.NewFakeLLM([]string{"r1", "r2", "r3"})
		buf := memory.NewBuffer()
		chain := newChain(llm, buf)

		for _, q := range []string{"q1", "q2", "q3"} {
			_, err := chain.Ask(ctx, q)
			require.NoError(t, err)
		}

		turns := buf.Turns()
		require.Len(t, turns, 3)
		assert.Equal(t, "q1", turns[0].Input)
		assert.Equal(t, "r1", turns[0].Output)
		assert.Equal(t, "q3", turns[2].Input)
	})

	t.Run("sampling overrides", func(t *testing.T) {
		llm := fake.NewFakeLLM([]string{"ok"})
		chain := newChain(llm, memory.NewBuffer(),
			chains.WithTemperature(0.2), chains.WithMaxTokens(256))

		_, err := chain.Ask(ctx, "q")
		require.NoError(t, err)
		assert.Equal(t, 0.2, llm.LastOptions().Temperature)
		assert.Equal(t, 256, llm.LastOptions().MaxTokens)
	})
}
