package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"payment-support-be/internal/dto"
	"payment-support-be/internal/entity"
	"payment-support-be/internal/repository/specification"
	"payment-support-be/internal/repository/unitofwork"
	"payment-support-be/pkg/embedding"
	"payment-support-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedEntryMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for SupportEntryId: %s", payload.SupportEntryId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.SupportEntryRepository().FindOne(ctx, specification.ByID{ID: payload.SupportEntryId})
	if err != nil {
		log.Printf("[ERROR] Failed to get support entry %s: %v", payload.SupportEntryId, err)
		msg.Nack()
		return
	}
	if entry == nil {
		log.Printf("[WARN] Support entry not found (deleted?): %s", payload.SupportEntryId)
		msg.Ack()
		return
	}

	entryUpdatedAt := "-"
	if entry.UpdatedAt != nil {
		entryUpdatedAt = entry.UpdatedAt.Format(time.RFC3339)
	}

	content := fmt.Sprintf(`Title: %s
Category: %s

%s

Created At: %s
Updated At: %s`,
		entry.Title,
		entry.Category,
		entry.Content,
		entry.CreatedAt.Format(time.RFC3339),
		entryUpdatedAt,
	)

	log.Printf("[INFO] Generating embeddings for entry %s (content length: %d)", payload.SupportEntryId, len(content))

	// ChunkSize: 1500 chars (approx 375 tokens), Overlap: 200 chars
	chunks := utils.SplitText(content, 1500, 200)
	log.Printf("[INFO] Content split into %d chunks", len(chunks))

	var newEmbeddings []*entity.SupportEmbedding

	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(ctx, chunk, embedding.TaskRetrievalDocument)
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of entry %s: %v", i, payload.SupportEntryId, err)
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.SupportEmbedding{
			Id:             uuid.New(),
			Chunk:          chunk,
			EmbeddingValue: res.Embedding.Values,
			SupportEntryId: entry.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	log.Printf("[INFO] Deleting old embeddings for entry %s", payload.SupportEntryId)
	if err := uow.SupportEmbeddingRepository().DeleteByEntryId(ctx, entry.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[INFO] Creating %d new embeddings for entry %s", len(newEmbeddings), payload.SupportEntryId)
	if len(newEmbeddings) > 0 {
		if err := uow.SupportEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			log.Printf("[ERROR] Failed to create bulk embeddings: %v", err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Support entry processed: %d chunks for SupportEntryId: %s", len(newEmbeddings), payload.SupportEntryId)
	msg.Ack()
}
