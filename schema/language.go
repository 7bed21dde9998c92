package schema

// Language is the classification of a piece of user input.
type Language string

const (
	English Language = "english"
	Tamil   Language = "tamil"
)

// Tag returns the short language code used to tag index entries
// and document metadata.
func (l Language) Tag() string {
	if l == Tamil {
		return "ta"
	}
	return "en"
}

func (l Language) String() string {
	return string(l)
}
