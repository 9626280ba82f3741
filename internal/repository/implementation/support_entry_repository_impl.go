package implementation

import (
	"context"
	"errors"

	"payment-support-be/internal/entity"
	"payment-support-be/internal/mapper"
	"payment-support-be/internal/model"
	"payment-support-be/internal/repository/contract"
	"payment-support-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupportEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SupportEntryMapper
}

func NewSupportEntryRepository(db *gorm.DB) contract.SupportEntryRepository {
	return &SupportEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewSupportEntryMapper(),
	}
}

func (r *SupportEntryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SupportEntryRepositoryImpl) Create(ctx context.Context, entry *entity.SupportEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *SupportEntryRepositoryImpl) Update(ctx context.Context, entry *entity.SupportEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *SupportEntryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SupportEntry{}, id).Error
}

func (r *SupportEntryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SupportEntry, error) {
	var m model.SupportEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SupportEntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SupportEntry, error) {
	var models []*model.SupportEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SupportEntryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.SupportEntry{}).Count(&count).Error
	return count, err
}
