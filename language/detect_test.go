package language_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thunai-ai/thunai/language"
	"github.com/thunai-ai/thunai/schema"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want schema.Language
	}{
		{"all ascii", "how to apply for a ration card", schema.English},
		{"empty string", "", schema.English},
		{"all tamil", "ரேஷன் அட்டைக்கு எப்படி விண்ணப்பிக்கலாம்", schema.Tamil},
		{"single embedded tamil char", "apply for ரேஷன் card", schema.Tamil},
		{"tamil char at end", "what about அ", schema.Tamil},
		{"digits and punctuation", "scheme #42, 2024?", schema.English},
		{"non-tamil unicode", "naïve café", schema.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, language.Detect(tt.text))
		})
	}
}

func TestDetectBlockBoundaries(t *testing.T) {
	// U+0B80 and U+0BFF are both inside the Tamil block.
	assert.Equal(t, schema.Tamil, language.Detect(string(rune(0x0B80))))
	assert.Equal(t, schema.Tamil, language.Detect(string(rune(0x0BFF))))
	// Neighbouring blocks are not.
	assert.Equal(t, schema.English, language.Detect(string(rune(0x0B7F))))
	assert.Equal(t, schema.English, language.Detect(string(rune(0x0C00))))
}
