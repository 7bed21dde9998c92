package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thunai-ai/thunai/language"
	"github.com/thunai-ai/thunai/schema"
)

// DefaultTopK is how many keyword matches and how many vector passages
// go into the context.
const DefaultTopK = 3

// Context is the per-query retrieval result handed to the generation
// step. Language is the detected query language, reused by the caller
// for the reply-language directive.
type Context struct {
	Language schema.Language
	Text     string
}

// ContextBuilder merges the keyword index short-list with the vector
// store short-list into one labeled context blob.
type ContextBuilder struct {
	index     *Index
	retriever schema.Retriever
	topK      int
	logger    *slog.Logger
}

// BuilderOption configures a ContextBuilder.
type BuilderOption func(*ContextBuilder)

// WithTopK overrides how many results each source contributes.
func WithTopK(k int) BuilderOption {
	return func(b *ContextBuilder) {
		if k > 0 {
			b.topK = k
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *ContextBuilder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewContextBuilder creates a builder over the given keyword index and
// vector retriever.
func NewContextBuilder(index *Index, retriever schema.Retriever, opts ...BuilderOption) *ContextBuilder {
	b := &ContextBuilder{
		index:     index,
		retriever: retriever,
		topK:      DefaultTopK,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("component", "context_builder")
	return b
}

// Build classifies the query, ranks the keyword index, queries the
// vector retriever, and concatenates both short-lists into the final
// context text. Fewer than topK results on either side is not an
// error; a failing vector retriever is.
func (b *ContextBuilder) Build(ctx context.Context, query string) (Context, error) {
	lang := language.Detect(query)

	matches := b.index.Search(query, b.topK)
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, formatQABlock(m.Entry))
	}

	docs, err := b.retriever.GetRelevantDocuments(ctx, query)
	if err != nil {
		return Context{}, fmt.Errorf("vector retrieval failed: %w", err)
	}
	if len(docs) > b.topK {
		docs = docs[:b.topK]
	}
	passages := make([]string, 0, len(docs))
	for _, doc := range docs {
		passages = append(passages, doc.PageContent)
	}

	b.logger.DebugContext(ctx, "context assembled",
		"language", lang, "qa_matches", len(blocks), "rag_passages", len(passages))

	text := "QA Context:\n" + strings.Join(blocks, "\n\n") +
		"\n\nRAG Context:\n" + strings.Join(passages, "\n\n")
	return Context{Language: lang, Text: text}, nil
}

// formatQABlock renders an entry as a two-line block in the entry's
// own language, which is not necessarily the query's language.
func formatQABlock(e Entry) string {
	if e.Language == schema.Tamil {
		return fmt.Sprintf("Tamil Q: %s\nTamil A: %s", e.Record.QuestionTA, e.Record.AnswerTA)
	}
	return fmt.Sprintf("English Q: %s\nEnglish A: %s", e.Record.QuestionEN, e.Record.AnswerEN)
}
