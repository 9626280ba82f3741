package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"payment-support-be/pkg/llm"
	"payment-support-be/pkg/store"
)

func TestFormatContext(t *testing.T) {
	docs := []store.Document{
		{Title: "Daily transfer limits", Text: "Standard accounts may transfer up to $5,000 per day.", Score: 0.92},
		{Title: "Card blocking", Text: "You can block a lost card from the app.", Score: 0.81},
	}

	got := FormatContext(docs)

	if !strings.HasPrefix(got, "[1] Daily transfer limits\n") {
		t.Errorf("missing first block header, got:\n%s", got)
	}
	if !strings.Contains(got, "[2] Card blocking\n") {
		t.Errorf("missing second block header, got:\n%s", got)
	}
	if !strings.Contains(got, "$5,000 per day") {
		t.Errorf("missing first block body, got:\n%s", got)
	}
}

func TestFormatContextEmpty(t *testing.T) {
	if got := FormatContext(nil); got != NoContextSentinel {
		t.Errorf("FormatContext(nil) = %q, want sentinel", got)
	}
	if got := FormatContext([]store.Document{}); got != NoContextSentinel {
		t.Errorf("FormatContext(empty) = %q, want sentinel", got)
	}
}

func TestFormatContextBudget(t *testing.T) {
	// "[1] First\n" is 10 chars, so the first block consumes the budget
	// down to the last 10 chars and nothing else fits.
	big := strings.Repeat("x", MaxContextChars-20)
	docs := []store.Document{
		{Title: "First", Text: big},
		{Title: "Second", Text: "does not fit anymore"},
		{Title: "Third", Text: "also dropped"},
	}

	got := FormatContext(docs)

	if !strings.Contains(got, "[1] First") {
		t.Error("first document must always be included")
	}
	if strings.Contains(got, "Second") || strings.Contains(got, "Third") {
		t.Errorf("documents over budget must be dropped whole, got %d chars", len(got))
	}
	if len(got) > MaxContextChars {
		t.Errorf("formatted context is %d chars, budget is %d", len(got), MaxContextChars)
	}
}

func TestFormatContextOversizedFirstDocument(t *testing.T) {
	docs := []store.Document{
		{Title: "Huge", Text: strings.Repeat("y", MaxContextChars*2)},
	}

	got := FormatContext(docs)
	if !strings.Contains(got, "[1] Huge") {
		t.Error("an oversized top hit is still included rather than dropped")
	}
	if len(got) > MaxContextChars {
		t.Errorf("formatted context is %d chars, budget is %d", len(got), MaxContextChars)
	}
}

func TestFormatContextTruncatesAtRuneBoundary(t *testing.T) {
	// Three-byte runes guarantee the raw budget falls mid-rune.
	docs := []store.Document{
		{Title: "Gebühren", Text: strings.Repeat("€", MaxContextChars)},
	}

	got := FormatContext(docs)
	if len(got) > MaxContextChars {
		t.Errorf("formatted context is %d chars, budget is %d", len(got), MaxContextChars)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a multi-byte rune")
	}
}

func TestBuildRagMessages(t *testing.T) {
	b := NewBuilder()
	history := []llm.Message{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}

	msgs := b.BuildRagMessages("[1] Fees\nOverdraft fee is $20.", history, "what is the overdraft fee?")

	if len(msgs) != 4 {
		t.Fatalf("len = %d, want 4", len(msgs))
	}
	if msgs[0].Role != "system" || !strings.Contains(msgs[0].Content, "Overdraft fee is $20.") {
		t.Errorf("system message missing context: %+v", msgs[0])
	}
	if msgs[1].Content != "earlier question" || msgs[2].Content != "earlier answer" {
		t.Errorf("history not preserved in order: %+v", msgs[1:3])
	}
	if msgs[3].Role != "user" || msgs[3].Content != "what is the overdraft fee?" {
		t.Errorf("question not last: %+v", msgs[3])
	}
}
