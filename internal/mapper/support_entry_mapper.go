package mapper

import (
	"time"

	"payment-support-be/internal/entity"
	"payment-support-be/internal/model"

	"gorm.io/gorm"
)

type SupportEntryMapper struct{}

func NewSupportEntryMapper() *SupportEntryMapper {
	return &SupportEntryMapper{}
}

func (m *SupportEntryMapper) ToEntity(s *model.SupportEntry) *entity.SupportEntry {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.SupportEntry{
		Id:        s.Id,
		Title:     s.Title,
		Content:   s.Content,
		Category:  s.Category,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
		IsDeleted: s.DeletedAt.Valid,
	}
}

func (m *SupportEntryMapper) ToModel(e *entity.SupportEntry) *model.SupportEntry {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.SupportEntry{
		Id:        e.Id,
		Title:     e.Title,
		Content:   e.Content,
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *SupportEntryMapper) ToEntities(models []*model.SupportEntry) []*entity.SupportEntry {
	entities := make([]*entity.SupportEntry, len(models))
	for i, s := range models {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
