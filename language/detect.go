// Package language classifies user input as Tamil or English by
// Unicode code-point range membership.
package language

import "github.com/thunai-ai/thunai/schema"

const (
	tamilBlockStart = 0x0B80
	tamilBlockEnd   = 0x0BFF
)

// Detect scans the text in order and returns Tamil as soon as any rune
// falls inside the Tamil Unicode block (U+0B80..U+0BFF). Everything else
// is classified as English. A single embedded Tamil character forces the
// Tamil classification for the whole string.
func Detect(text string) schema.Language {
	for _, r := range text {
		if r >= tamilBlockStart && r <= tamilBlockEnd {
			return schema.Tamil
		}
	}
	return schema.English
}
