package entity

import (
	"time"

	"github.com/google/uuid"
)

// SupportEmbedding is one embedded chunk of a support entry.
type SupportEmbedding struct {
	Id             uuid.UUID
	Chunk          string
	EmbeddingValue []float32
	SupportEntryId uuid.UUID
	ChunkIndex     int
	CreatedAt      time.Time
}
