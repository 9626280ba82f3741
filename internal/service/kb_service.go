package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"payment-support-be/internal/dto"
	"payment-support-be/internal/entity"
	"payment-support-be/internal/repository/specification"
	"payment-support-be/internal/repository/unitofwork"
	supportEvents "payment-support-be/pkg/support/events"

	"github.com/google/uuid"
)

type IKnowledgeBaseService interface {
	Create(ctx context.Context, req *dto.CreateSupportEntryRequest) (*dto.SupportEntryResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.SupportEntryResponse, error)
	List(ctx context.Context, req *dto.ListSupportEntriesRequest) ([]*dto.SupportEntryResponse, error)
	Update(ctx context.Context, req *dto.UpdateSupportEntryRequest) (*dto.SupportEntryResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type knowledgeBaseService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   supportEvents.Publisher
}

func NewKnowledgeBaseService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher supportEvents.Publisher,
) IKnowledgeBaseService {
	return &knowledgeBaseService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *knowledgeBaseService) Create(ctx context.Context, req *dto.CreateSupportEntryRequest) (*dto.SupportEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry := entity.SupportEntry{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		CreatedAt: time.Now(),
	}

	if err := uow.SupportEntryRepository().Create(ctx, &entry); err != nil {
		return nil, err
	}

	if err := s.queueEmbedding(ctx, entry.Id); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.PublishSupportEntryCreated(ctx, entry.Id, entry.Title, entry.Category)
	}

	return toSupportEntryResponse(&entry), nil
}

func (s *knowledgeBaseService) Show(ctx context.Context, id uuid.UUID) (*dto.SupportEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.SupportEntryRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("support entry not found")
	}
	return toSupportEntryResponse(entry), nil
}

func (s *knowledgeBaseService) List(ctx context.Context, req *dto.ListSupportEntriesRequest) ([]*dto.SupportEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if req.Category != "" {
		specs = append(specs, specification.ByCategory{Category: req.Category})
	}
	if req.Query != "" {
		specs = append(specs, specification.SupportEntrySearchQuery{Query: req.Query})
	}
	if req.PageSize > 0 {
		page := req.Page
		if page < 1 {
			page = 1
		}
		specs = append(specs, specification.Pagination{
			Limit:  req.PageSize,
			Offset: (page - 1) * req.PageSize,
		})
	}

	entries, err := uow.SupportEntryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SupportEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, toSupportEntryResponse(entry))
	}
	return responses, nil
}

func (s *knowledgeBaseService) Update(ctx context.Context, req *dto.UpdateSupportEntryRequest) (*dto.SupportEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.SupportEntryRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("support entry not found")
	}

	now := time.Now()
	entry.Title = req.Title
	entry.Content = req.Content
	entry.Category = req.Category
	entry.UpdatedAt = &now

	if err := uow.SupportEntryRepository().Update(ctx, entry); err != nil {
		return nil, err
	}

	// Content changed, embeddings must be rebuilt.
	if err := s.queueEmbedding(ctx, entry.Id); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.PublishSupportEntryUpdated(ctx, entry.Id, entry.Title, entry.Category)
	}

	return toSupportEntryResponse(entry), nil
}

func (s *knowledgeBaseService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.SupportEntryRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("support entry not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.SupportEmbeddingRepository().DeleteByEntryId(ctx, id); err != nil {
		return err
	}
	if err := uow.SupportEntryRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.PublishSupportEntryDeleted(ctx, entry.Id, entry.Title, entry.Category)
	}
	return nil
}

func (s *knowledgeBaseService) queueEmbedding(ctx context.Context, entryId uuid.UUID) error {
	payload := dto.PublishEmbedEntryMessage{SupportEntryId: entryId}
	msgJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, msgJson)
}


func toSupportEntryResponse(entry *entity.SupportEntry) *dto.SupportEntryResponse {
	return &dto.SupportEntryResponse{
		Id:        entry.Id,
		Title:     entry.Title,
		Content:   entry.Content,
		Category:  entry.Category,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
