package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 1500, 200)
	assert.Equal(t, []string{"short text"}, chunks)
}

func TestSplitTextChunksOverlap(t *testing.T) {
	text := strings.Repeat("a", 250)
	chunks := SplitText(text, 100, 20)

	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 100)
	}

	// Adjacent chunks share the overlap region
	first := chunks[0]
	second := chunks[1]
	assert.Equal(t, first[len(first)-20:], second[:20])
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("b", 300)
	// Degenerate config must not loop forever
	chunks := SplitText(text, 100, 100)
	assert.NotEmpty(t, chunks)
}
