package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one persisted turn of the conversation transcript.
// Label and Confidence are only set on user messages; Degraded and
// Sources only on assistant messages.
type ChatMessage struct {
	Id            uuid.UUID
	Content       string
	Role          string
	Label         string
	Confidence    float64
	Degraded      bool
	Sources       json.RawMessage
	ChatSessionId uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}
