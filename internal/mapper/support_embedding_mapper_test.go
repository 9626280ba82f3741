package mapper

import (
	"testing"
	"time"

	"payment-support-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSupportEmbeddingVectorRoundTrip(t *testing.T) {
	m := NewSupportEmbeddingMapper()

	e := &entity.SupportEmbedding{
		Id:             uuid.New(),
		Chunk:          "Standard accounts can transfer up to $5,000 per day.",
		EmbeddingValue: []float32{0.1, -0.2, 0.3},
		SupportEntryId: uuid.New(),
		ChunkIndex:     0,
		CreatedAt:      time.Now(),
	}

	got := m.ToEntity(m.ToModel(e))

	assert.Equal(t, e.Id, got.Id)
	assert.Equal(t, e.Chunk, got.Chunk)
	assert.Equal(t, e.EmbeddingValue, got.EmbeddingValue)
	assert.Equal(t, e.SupportEntryId, got.SupportEntryId)
	assert.Equal(t, e.ChunkIndex, got.ChunkIndex)
}

func TestSupportEntrySoftDeleteRoundTrip(t *testing.T) {
	m := NewSupportEntryMapper()

	e := &entity.SupportEntry{
		Id:        uuid.New(),
		Title:     "Daily transfer limits",
		Content:   "Standard accounts can transfer up to $5,000 per day.",
		Category:  "limits",
		CreatedAt: time.Now(),
		IsDeleted: true,
	}

	model := m.ToModel(e)
	assert.True(t, model.DeletedAt.Valid)

	back := m.ToEntity(model)
	assert.True(t, back.IsDeleted)
	assert.Equal(t, e.Title, back.Title)
	assert.Equal(t, e.Category, back.Category)
}
