package classifier

import (
	"testing"
)

func TestClassify(t *testing.T) {
	c := New(nil)

	tests := []struct {
		name      string
		utterance string
		wantLabel Label
	}{
		{
			name:      "plain greeting",
			utterance: "hi there",
			wantLabel: LabelGreeting,
		},
		{
			name:      "greeting phrase",
			utterance: "good morning!",
			wantLabel: LabelGreeting,
		},
		{
			name:      "farewell counts as greeting",
			utterance: "thanks, bye",
			wantLabel: LabelGreeting,
		},
		{
			name:      "domain question routes to rag",
			utterance: "What is my daily transfer limit?",
			wantLabel: LabelRagRequired,
		},
		{
			name:      "domain statement routes to rag",
			utterance: "my card payment failed yesterday",
			wantLabel: LabelRagRequired,
		},
		{
			name:      "off-domain question is direct",
			utterance: "What's the weather like today?",
			wantLabel: LabelDirectAnswer,
		},
		{
			name:      "question mark alone is direct",
			utterance: "the capital of France?",
			wantLabel: LabelDirectAnswer,
		},
		{
			name:      "single token gibberish is unclear",
			utterance: "asdf",
			wantLabel: LabelUnclear,
		},
		{
			name:      "empty utterance is unclear",
			utterance: "",
			wantLabel: LabelUnclear,
		},
		{
			name:      "no signal at all is unclear",
			utterance: "the quick brown fox",
			wantLabel: LabelUnclear,
		},
		{
			name:      "greeting beats domain keyword on tie",
			utterance: "hi, I need help with my card",
			wantLabel: LabelGreeting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.utterance)
			if got.Label != tt.wantLabel {
				t.Errorf("Classify(%q).Label = %s, want %s (signals: %+v)",
					tt.utterance, got.Label, tt.wantLabel, got.Signals)
			}
			if got.Confidence <= 0 || got.Confidence > 1 {
				t.Errorf("Classify(%q).Confidence = %f, want in (0, 1]", tt.utterance, got.Confidence)
			}
		})
	}
}

func TestClassifyConfidence(t *testing.T) {
	c := New(nil)

	// Domain keywords (1.0) vs interrogative (0.6): 1.0 / 1.6
	got := c.Classify("What is my daily transfer limit?")
	if got.Label != LabelRagRequired {
		t.Fatalf("Label = %s, want %s", got.Label, LabelRagRequired)
	}
	want := 1.0 / 1.6
	if diff := got.Confidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Confidence = %f, want %f", got.Confidence, want)
	}

	// No detector fires: unclear at the floor
	got = c.Classify("the quick brown fox")
	if got.Confidence != unclearFloor {
		t.Errorf("Confidence = %f, want %f", got.Confidence, unclearFloor)
	}
	if len(got.Signals) != 0 {
		t.Errorf("Signals = %+v, want none", got.Signals)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hi There!  ", "hi there"},
		{"What's my PIN?", "what's my pin"},
		{"multi\nline\ttext", "multi line text"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
