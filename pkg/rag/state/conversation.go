// FILE: pkg/rag/state/conversation.go
// PURPOSE: Per-session state carried across one routing cycle

package state

import (
	"sync"

	"payment-support-be/pkg/rag/classifier"
	"payment-support-be/pkg/rag/history"
	"payment-support-be/pkg/store"

	"github.com/google/uuid"
)

// Phase is the position of the current cycle in the routing state machine.
type Phase string

const (
	PhaseStart            Phase = "START"
	PhaseClassified       Phase = "CLASSIFIED"
	PhaseRetrieving       Phase = "RETRIEVING"
	PhaseContextFormatted Phase = "CONTEXT_FORMATTED"
	PhaseGenerating       Phase = "GENERATING"
	PhaseDirectGenerating Phase = "DIRECT_GENERATING"
	PhaseResponded        Phase = "RESPONDED"
	PhaseDone             Phase = "DONE"
)

// Conversation is the unit of session state. History survives across
// cycles; everything in the transient block belongs to the cycle in
// flight and is cleared when it completes.
type Conversation struct {
	ID     uuid.UUID
	UserID uuid.UUID

	History *history.Manager

	// Transient per-cycle state
	Phase          Phase
	Utterance      string
	Classification classifier.Result
	Documents      []store.Document
	ContextBlock   string
	Response       string

	mu sync.Mutex
}

// NewConversation creates a fresh conversation with a bounded history.
func NewConversation(id, userId uuid.UUID, maxExchanges int) *Conversation {
	return &Conversation{
		ID:      id,
		UserID:  userId,
		History: history.NewManager(maxExchanges),
		Phase:   PhaseStart,
	}
}

// Lock serializes cycles on this conversation. Concurrent utterances for
// the same session queue up rather than interleave phases.
func (c *Conversation) Lock() { c.mu.Lock() }

func (c *Conversation) Unlock() { c.mu.Unlock() }

// ClearTransients drops all per-cycle fields and returns the conversation
// to the start phase. History is untouched.
func (c *Conversation) ClearTransients() {
	c.Phase = PhaseStart
	c.Utterance = ""
	c.Classification = classifier.Result{}
	c.Documents = nil
	c.ContextBlock = ""
	c.Response = ""
}

// Reset clears both the transients and the retained history.
func (c *Conversation) Reset() {
	c.ClearTransients()
	c.History.Reset()
}
