package events

import (
	"context"
	"time"

	"payment-support-be/internal/pkg/logger"
	pkgEvents "payment-support-be/pkg/events"
	pkgNats "payment-support-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for chat and knowledge base operations
type Publisher interface {
	PublishChatTurnCompleted(ctx context.Context, sessionId, userId uuid.UUID, label string, confidence float64, degraded bool)
	PublishSupportEntryCreated(ctx context.Context, entryId uuid.UUID, title, category string)
	PublishSupportEntryUpdated(ctx context.Context, entryId uuid.UUID, title, category string)
	PublishSupportEntryDeleted(ctx context.Context, entryId uuid.UUID, title, category string)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pkgNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher creates a new NATS-based event publisher
func NewNatsPublisher(publisher *pkgNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishChatTurnCompleted emits CHAT_TURN_COMPLETED after a routing cycle commits
func (p *NatsPublisher) PublishChatTurnCompleted(ctx context.Context, sessionId, userId uuid.UUID, label string, confidence float64, degraded bool) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: "CHAT_TURN_COMPLETED",
		Data: map[string]interface{}{
			"chat_session_id": sessionId,
			"user_id":         userId,
			"label":           label,
			"confidence":      confidence,
			"degraded":        degraded,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("CHAT", "Failed to publish CHAT_TURN_COMPLETED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishSupportEntryCreated emits SUPPORT_ENTRY_CREATED
func (p *NatsPublisher) PublishSupportEntryCreated(ctx context.Context, entryId uuid.UUID, title, category string) {
	p.publishEntryEvent(ctx, "SUPPORT_ENTRY_CREATED", entryId, title, category)
}

// PublishSupportEntryUpdated emits SUPPORT_ENTRY_UPDATED
func (p *NatsPublisher) PublishSupportEntryUpdated(ctx context.Context, entryId uuid.UUID, title, category string) {
	p.publishEntryEvent(ctx, "SUPPORT_ENTRY_UPDATED", entryId, title, category)
}

// PublishSupportEntryDeleted emits SUPPORT_ENTRY_DELETED
func (p *NatsPublisher) PublishSupportEntryDeleted(ctx context.Context, entryId uuid.UUID, title, category string) {
	p.publishEntryEvent(ctx, "SUPPORT_ENTRY_DELETED", entryId, title, category)
}

func (p *NatsPublisher) publishEntryEvent(ctx context.Context, eventType string, entryId uuid.UUID, title, category string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"entry_id": entryId,
			"title":    title,
			"category": category,
		},
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("KB", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}
