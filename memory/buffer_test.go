package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunai-ai/thunai/memory"
)

func TestBuffer(t *testing.T) {
	t.Run("turns keep arrival order", func(t *testing.T) {
		b := memory.NewBuffer()
		b.Save("q1", "a1")
		b.Save("q2", "a2")
		b.Save("q3", "a3")

		turns := b.Turns()
		require.Len(t, turns, 3)
		assert.Equal(t, "q1", turns[0].Input)
		assert.Equal(t, "a3", turns[2].Output)
		assert.Equal(t, 3, b.Len())
	})

	t.Run("transcript format", func(t *testing.T) {
		b := memory.NewBuffer()
		assert.Empty(t, b.Transcript())

		b.Save("hello", "vanakkam")
		b.Save("bye", "poitu varen")
		assert.Equal(t, "Human: hello\nAI: vanakkam\nHuman: bye\nAI: poitu varen", b.Transcript())
	})

	t.Run("window keeps the most recent turns", func(t *testing.T) {
		b := memory.NewBuffer(memory.WithWindow(2))
		b.Save("q1", "a1")
		b.Save("q2", "a2")
		b.Save("q3", "a3")

		turns := b.Turns()
		require.Len(t, turns, 2)
		assert.Equal(t, "q2", turns[0].Input)
		assert.Equal(t, "q3", turns[1].Input)
	})

	t.Run("turns returns a copy", func(t *testing.T) {
		b := memory.NewBuffer()
		b.Save("q1", "a1")
		turns := b.Turns()
		turns[0].Input = "mutated"
		assert.Equal(t, "q1", b.Turns()[0].Input)
	})
}
