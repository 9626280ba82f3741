// FILE: pkg/rag/state/manager.go
// PURPOSE: Phase transitions with their legality rules

package state

import (
	"fmt"
	"log"
)

// transitions lists the legal successor phases.
var transitions = map[Phase][]Phase{
	PhaseStart:            {PhaseClassified},
	PhaseClassified:       {PhaseRetrieving, PhaseDirectGenerating, PhaseResponded},
	PhaseRetrieving:       {PhaseContextFormatted},
	PhaseContextFormatted: {PhaseGenerating},
	PhaseGenerating:       {PhaseResponded},
	PhaseDirectGenerating: {PhaseResponded},
	PhaseResponded:        {PhaseDone},
	PhaseDone:             {},
}

// Manager applies phase transitions and logs them
type Manager struct {
	logger *log.Logger
}

// NewManager creates a new state manager
func NewManager(logger *log.Logger) *Manager {
	return &Manager{logger: logger}
}

// Transition moves the conversation to the next phase, rejecting moves
// the state machine does not define.
func (m *Manager) Transition(conv *Conversation, next Phase) error {
	allowed := transitions[conv.Phase]
	for _, p := range allowed {
		if p == next {
			if m.logger != nil {
				m.logger.Printf("[STATE] session=%s %s -> %s", conv.ID, conv.Phase, next)
			}
			conv.Phase = next
			return nil
		}
	}
	return fmt.Errorf("illegal transition %s -> %s", conv.Phase, next)
}
