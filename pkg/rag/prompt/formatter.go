// FILE: pkg/rag/prompt/formatter.go
// PURPOSE: Turn retrieved documents into the grounding block for generation

package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"payment-support-be/pkg/store"
)

// MaxContextChars caps the formatted grounding block. Documents are
// dropped whole rather than cut mid-text.
const MaxContextChars = 2000

// NoContextSentinel is emitted when retrieval returned nothing usable.
// The generation prompt tells the model how to react to it.
const NoContextSentinel = "No relevant information was found in the knowledge base."

// FormatContext renders documents as numbered reference blocks:
//
//	[1] Daily transfer limits
//	Standard accounts may transfer up to ...
//
// Documents are taken in the given order (highest similarity first).
// The first document is always included; later ones only while the
// character budget holds.
func FormatContext(docs []store.Document) string {
	if len(docs) == 0 {
		return NoContextSentinel
	}

	var sb strings.Builder
	for i, doc := range docs {
		block := fmt.Sprintf("[%d] %s\n%s", i+1, doc.Title, strings.TrimSpace(doc.Text))
		if i > 0 {
			if sb.Len()+len("\n\n")+len(block) > MaxContextChars {
				break
			}
			sb.WriteString("\n\n")
		}
		sb.WriteString(block)
	}

	out := sb.String()
	if len(out) > MaxContextChars {
		cut := MaxContextChars
		// Back off to a rune boundary so the cut never splits a
		// multi-byte character.
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut]
	}
	return out
}
