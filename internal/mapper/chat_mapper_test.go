package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"payment-support-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestChatMessageRoundTrip(t *testing.T) {
	m := NewChatMapper()
	now := time.Now().Truncate(time.Second)

	e := &entity.ChatMessage{
		Id:            uuid.New(),
		Content:       "What is my daily transfer limit?",
		Role:          "user",
		Label:         "RAG_REQUIRED",
		Confidence:    0.625,
		ChatSessionId: uuid.New(),
		CreatedAt:     now,
	}

	got := m.ChatMessageToEntity(m.ChatMessageToModel(e))

	assert.Equal(t, e.Id, got.Id)
	assert.Equal(t, e.Content, got.Content)
	assert.Equal(t, e.Role, got.Role)
	assert.Equal(t, e.Label, got.Label)
	assert.Equal(t, e.Confidence, got.Confidence)
	assert.Equal(t, e.ChatSessionId, got.ChatSessionId)
	assert.False(t, got.IsDeleted)
}

func TestChatMessageSourcesPassthrough(t *testing.T) {
	m := NewChatMapper()

	sources := json.RawMessage(`[{"entry_id":"abc","title":"Daily transfer limits","score":0.91}]`)
	e := &entity.ChatMessage{
		Id:            uuid.New(),
		Content:       "Your daily limit is $5,000.",
		Role:          "assistant",
		Degraded:      false,
		Sources:       sources,
		ChatSessionId: uuid.New(),
		CreatedAt:     time.Now(),
	}

	got := m.ChatMessageToEntity(m.ChatMessageToModel(e))
	assert.JSONEq(t, string(sources), string(got.Sources))
}

func TestChatSessionSoftDelete(t *testing.T) {
	m := NewChatMapper()
	deletedAt := time.Now().Truncate(time.Second)

	e := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		Title:     "Unnamed session",
		CreatedAt: time.Now(),
		DeletedAt: &deletedAt,
		IsDeleted: true,
	}

	model := m.ChatSessionToModel(e)
	assert.True(t, model.DeletedAt.Valid)
	assert.Equal(t, deletedAt, model.DeletedAt.Time)

	back := m.ChatSessionToEntity(model)
	assert.True(t, back.IsDeleted)
	assert.NotNil(t, back.DeletedAt)
}

func TestChatMessageNilSafe(t *testing.T) {
	m := NewChatMapper()
	assert.Nil(t, m.ChatMessageToEntity(nil))
	assert.Nil(t, m.ChatMessageToModel(nil))
	assert.Nil(t, m.ChatSessionToEntity(nil))
	assert.Nil(t, m.ChatSessionToModel(nil))
}
