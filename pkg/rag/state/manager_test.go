package state

import (
	"testing"

	"github.com/google/uuid"
)

func TestTransitionLegalPaths(t *testing.T) {
	m := NewManager(nil)

	paths := [][]Phase{
		// grounded path
		{PhaseClassified, PhaseRetrieving, PhaseContextFormatted, PhaseGenerating, PhaseResponded, PhaseDone},
		// direct path
		{PhaseClassified, PhaseDirectGenerating, PhaseResponded, PhaseDone},
		// canned clarify path skips generation entirely
		{PhaseClassified, PhaseResponded, PhaseDone},
	}

	for _, path := range paths {
		conv := NewConversation(uuid.New(), uuid.New(), 5)
		for _, next := range path {
			if err := m.Transition(conv, next); err != nil {
				t.Fatalf("transition to %s: %v", next, err)
			}
		}
		if conv.Phase != PhaseDone {
			t.Errorf("final phase = %s, want DONE", conv.Phase)
		}
	}
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	m := NewManager(nil)
	conv := NewConversation(uuid.New(), uuid.New(), 5)

	if err := m.Transition(conv, PhaseGenerating); err == nil {
		t.Error("START -> GENERATING must be rejected")
	}
	if conv.Phase != PhaseStart {
		t.Errorf("phase mutated on rejected transition: %s", conv.Phase)
	}
}

func TestClearTransientsKeepsHistory(t *testing.T) {
	conv := NewConversation(uuid.New(), uuid.New(), 5)
	conv.History.AppendExchange("q", "a")
	conv.Utterance = "pending"
	conv.Response = "draft"
	conv.Phase = PhaseResponded

	conv.ClearTransients()

	if conv.Phase != PhaseStart || conv.Utterance != "" || conv.Response != "" {
		t.Errorf("transients not cleared: %+v", conv)
	}
	if conv.History.Len() != 2 {
		t.Errorf("history len = %d, want 2", conv.History.Len())
	}
}

func TestResetDropsHistory(t *testing.T) {
	conv := NewConversation(uuid.New(), uuid.New(), 5)
	conv.History.AppendExchange("q", "a")

	conv.Reset()
	if conv.History.Len() != 0 {
		t.Errorf("history len after Reset = %d, want 0", conv.History.Len())
	}

	// Resetting twice is harmless
	conv.Reset()
	if conv.History.Len() != 0 {
		t.Error("second Reset changed state")
	}
}
