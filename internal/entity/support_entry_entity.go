package entity

import (
	"time"

	"github.com/google/uuid"
)

// SupportEntry is one knowledge-base article the retriever can ground on.
type SupportEntry struct {
	Id        uuid.UUID
	Title     string
	Content   string
	Category  string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
