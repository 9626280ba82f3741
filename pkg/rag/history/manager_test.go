package history

import (
	"fmt"
	"testing"

	"payment-support-be/pkg/store"
)

func TestAppendExchangeBound(t *testing.T) {
	m := NewManager(3) // capacity: 6 turns

	for i := 0; i < 10; i++ {
		m.AppendExchange(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
		if m.Len() > 6 {
			t.Fatalf("after exchange %d: Len = %d, want <= 6", i, m.Len())
		}
	}

	turns := m.Turns()
	if len(turns) != 6 {
		t.Fatalf("Len = %d, want 6", len(turns))
	}

	// Oldest surviving pair is exchange 7
	if turns[0].Content != "q7" || turns[0].Role != store.RoleUser {
		t.Errorf("turns[0] = %+v, want user q7", turns[0])
	}
	if turns[5].Content != "a9" || turns[5].Role != store.RoleAssistant {
		t.Errorf("turns[5] = %+v, want assistant a9", turns[5])
	}

	// Eviction never splits a pair
	for i := 0; i < len(turns); i += 2 {
		if turns[i].Role != store.RoleUser || turns[i+1].Role != store.RoleAssistant {
			t.Errorf("turns %d..%d roles = %s,%s, want user,assistant",
				i, i+1, turns[i].Role, turns[i+1].Role)
		}
	}
}

func TestWindow(t *testing.T) {
	m := NewManager(5)
	m.AppendExchange("q0", "a0")
	m.AppendExchange("q1", "a1")
	m.AppendExchange("q2", "a2")

	got := m.Window(4)
	if len(got) != 4 {
		t.Fatalf("Window(4) len = %d, want 4", len(got))
	}
	if got[0].Content != "q1" || got[3].Content != "a2" {
		t.Errorf("Window(4) = %v, want q1..a2", got)
	}

	if got := m.Window(100); len(got) != 6 {
		t.Errorf("Window(100) len = %d, want 6", len(got))
	}
	if got := m.Window(0); len(got) != 6 {
		t.Errorf("Window(0) len = %d, want all 6", len(got))
	}
}

func TestReset(t *testing.T) {
	m := NewManager(2)
	m.AppendExchange("q", "a")
	m.Reset()
	if m.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", m.Len())
	}

	// Reset is idempotent
	m.Reset()
	if m.Len() != 0 {
		t.Errorf("Len after second Reset = %d, want 0", m.Len())
	}

	m.AppendExchange("q2", "a2")
	if m.Len() != 2 {
		t.Errorf("Len after append post-reset = %d, want 2", m.Len())
	}
}

func TestTurnsIsCopy(t *testing.T) {
	m := NewManager(2)
	m.AppendExchange("q", "a")

	turns := m.Turns()
	turns[0].Content = "mutated"

	if m.Turns()[0].Content != "q" {
		t.Error("Turns() exposed internal buffer")
	}
}
