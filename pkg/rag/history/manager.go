// FILE: pkg/rag/history/manager.go
// PURPOSE: Bounded conversation history for a single session

package history

import (
	"payment-support-be/pkg/llm"
	"payment-support-be/pkg/store"
)

// DefaultMaxExchanges bounds how many user/assistant exchanges a session
// retains. The turn capacity is twice this.
const DefaultMaxExchanges = 10

// Manager keeps the rolling window of turns for one conversation. It is
// not safe for concurrent use; the owning conversation serializes access.
type Manager struct {
	maxExchanges int
	turns        []store.Turn
}

func NewManager(maxExchanges int) *Manager {
	if maxExchanges <= 0 {
		maxExchanges = DefaultMaxExchanges
	}
	return &Manager{
		maxExchanges: maxExchanges,
		turns:        make([]store.Turn, 0, 2*maxExchanges),
	}
}

// AppendExchange commits one completed user/assistant pair. When the
// buffer is full the oldest pair is evicted, so the window always holds
// whole exchanges.
func (m *Manager) AppendExchange(userContent, assistantContent string) {
	m.turns = append(m.turns,
		store.Turn{Role: store.RoleUser, Content: userContent},
		store.Turn{Role: store.RoleAssistant, Content: assistantContent},
	)
	if max := 2 * m.maxExchanges; len(m.turns) > max {
		over := len(m.turns) - max
		m.turns = append(m.turns[:0], m.turns[over:]...)
	}
}

// Turns returns a copy of the full retained history, oldest first.
func (m *Manager) Turns() []store.Turn {
	out := make([]store.Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Window returns up to the last n turns as provider messages, oldest
// first, ready to prepend to a chat request.
func (m *Manager) Window(n int) []llm.Message {
	turns := m.turns
	if n > 0 && len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	messages := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, llm.Message{Role: t.Role, Content: t.Content})
	}
	return messages
}

// Len reports the number of retained turns.
func (m *Manager) Len() int {
	return len(m.turns)
}

// Reset drops all retained turns. Resetting an empty history is a no-op.
func (m *Manager) Reset() {
	m.turns = m.turns[:0]
}
