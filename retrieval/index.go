package retrieval

import (
	"sort"

	"github.com/thunai-ai/thunai/language"
	"github.com/thunai-ai/thunai/schema"
)

// languageBoost is the multiplicative score bonus applied when an
// entry's language matches the detected query language.
const languageBoost = 1.2

// Entry is one language-side projection of a QA record with its
// precomputed keyword multiset.
type Entry struct {
	Language schema.Language
	Keywords map[string]int
	Record   schema.QARecord
}

// Match is an index entry paired with its boosted overlap score.
type Match struct {
	Entry Entry
	Score float64
}

// Index holds the keyword entries for the whole knowledge base. It is
// built once at startup and read-only afterwards, so it is safe to
// share across calls without synchronization.
type Index struct {
	entries []Entry
}

// NewIndex builds up to two entries per record, one for each language
// side whose question/answer pair is fully present, keyed on the
// question text. Entries keep the record order of the input.
func NewIndex(records []schema.QARecord) *Index {
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		if rec.HasEnglish() {
			entries = append(entries, Entry{
				Language: schema.English,
				Keywords: Tokenize(rec.QuestionEN),
				Record:   rec,
			})
		}
		if rec.HasTamil() {
			entries = append(entries, Entry{
				Language: schema.Tamil,
				Keywords: Tokenize(rec.QuestionTA),
				Record:   rec,
			})
		}
	}
	return &Index{entries: entries}
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Search ranks every entry by boosted keyword overlap against the
// query and returns the top k matches. Same-language entries score
// 1.2x their raw overlap. Equal scores keep insertion order (stable
// sort), which is the documented deterministic tie-break.
func (ix *Index) Search(query string, k int) []Match {
	queryLang := language.Detect(query)
	queryKeywords := Tokenize(query)

	matches := make([]Match, len(ix.entries))
	for i, entry := range ix.entries {
		score := float64(Overlap(queryKeywords, entry.Keywords))
		if entry.Language == queryLang {
			score *= languageBoost
		}
		matches[i] = Match{Entry: entry, Score: score}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if k < 0 {
		k = 0
	}
	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k]
}
