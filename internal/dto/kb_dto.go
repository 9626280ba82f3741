package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSupportEntryRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"omitempty,max=64"`
}

type UpdateSupportEntryRequest struct {
	Id       uuid.UUID `json:"id" validate:"required"`
	Title    string    `json:"title" validate:"required,max=255"`
	Content  string    `json:"content" validate:"required"`
	Category string    `json:"category" validate:"omitempty,max=64"`
}

type SupportEntryResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Category  string     `json:"category"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ListSupportEntriesRequest struct {
	Category string `query:"category"`
	Query    string `query:"q"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

type DeleteSupportEntryRequest struct {
	Id uuid.UUID `json:"id" validate:"required"`
}

// PublishEmbedEntryMessage is the payload queued for the embedding worker.
type PublishEmbedEntryMessage struct {
	SupportEntryId uuid.UUID `json:"support_entry_id"`
}
