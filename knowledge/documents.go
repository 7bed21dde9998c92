package knowledge

import (
	"fmt"

	"github.com/thunai-ai/thunai/schema"
)

// Documents projects records into one vector-store document per present
// language side. The page content is a two-line "Question / Answer"
// block; the original question, answer and language tag travel along in
// the metadata.
func Documents(records []schema.QARecord) []schema.Document {
	docs := make([]schema.Document, 0, len(records))
	for _, rec := range records {
		if rec.HasEnglish() {
			docs = append(docs, sideDocument(rec, schema.English))
		}
		if rec.HasTamil() {
			docs = append(docs, sideDocument(rec, schema.Tamil))
		}
	}
	return docs
}

func sideDocument(rec schema.QARecord, lang schema.Language) schema.Document {
	question := rec.Question(lang)
	answer := rec.Answer(lang)
	content := fmt.Sprintf("Question: %s\nAnswer: %s", question, answer)
	return schema.NewDocument(content, map[string]any{
		"language": lang.Tag(),
		"question": question,
		"answer":   answer,
	})
}
