package schema

import "context"

// Document is a stored passage with arbitrary metadata, the unit the
// vector stores persist and return.
type Document struct {
	PageContent string
	Metadata    map[string]any
}

func (d Document) String() string {
	return d.PageContent
}

func NewDocument(content string, metadata map[string]any) Document {
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return Document{
		PageContent: content,
		Metadata:    metadata,
	}
}

// Retriever is the interface for fetching relevant documents for a query.
type Retriever interface {
	GetRelevantDocuments(ctx context.Context, query string) ([]Document, error)
}

// ContentResponse is the result of a chat-completion call.
type ContentResponse struct {
	Choices []*ContentChoice
}

// ContentChoice is a single candidate reply from the model.
type ContentChoice struct {
	Content        string
	StopReason     string
	GenerationInfo map[string]any
}
