package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id         uuid.UUID       `json:"id"`
	Role       string          `json:"role"`
	Content    string          `json:"content"`
	Label      string          `json:"label,omitempty"`
	Confidence float64         `json:"confidence,omitempty"`
	Degraded   bool            `json:"degraded,omitempty"`
	Sources    json.RawMessage `json:"sources,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Content       string    `json:"content" validate:"required,max=4000"`
}

// SourceDocumentDTO points at a knowledge-base entry the reply was
// grounded on.
type SourceDocumentDTO struct {
	EntryId string  `json:"entry_id"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}

type SendChatResponseChat struct {
	Id        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	ChatSessionId    uuid.UUID             `json:"chat_session_id"`
	ChatSessionTitle string                `json:"title"`
	Label            string                `json:"label"`
	Confidence       float64               `json:"confidence"`
	ElapsedMs        int64                 `json:"elapsed_ms"`
	Degraded         bool                  `json:"degraded,omitempty"`
	FailedStages     []string              `json:"failed_stages,omitempty"`
	Sources          []SourceDocumentDTO   `json:"sources,omitempty"`
	Sent             *SendChatResponseChat `json:"sent"`
	Reply            *SendChatResponseChat `json:"reply"`
}

type ResetSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
}

type DeleteSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
}
