package schema

// QARecord is one bilingual question/answer unit from the knowledge base.
// Each language pair is optional as a unit: a record may carry the English
// side, the Tamil side, or both. Records are immutable once loaded.
type QARecord struct {
	QuestionEN string `json:"question_en,omitempty"`
	AnswerEN   string `json:"answer_en,omitempty"`
	QuestionTA string `json:"question_ta,omitempty"`
	AnswerTA   string `json:"answer_ta,omitempty"`
}

// HasEnglish reports whether both halves of the English pair are present.
func (r QARecord) HasEnglish() bool {
	return r.QuestionEN != "" && r.AnswerEN != ""
}

// HasTamil reports whether both halves of the Tamil pair are present.
func (r QARecord) HasTamil() bool {
	return r.QuestionTA != "" && r.AnswerTA != ""
}

// Question returns the question text for the given language side.
func (r QARecord) Question(lang Language) string {
	if lang == Tamil {
		return r.QuestionTA
	}
	return r.QuestionEN
}

// Answer returns the answer text for the given language side.
func (r QARecord) Answer(lang Language) string {
	if lang == Tamil {
		return r.AnswerTA
	}
	return r.AnswerEN
}
