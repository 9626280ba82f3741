package implementation

import (
	"context"

	"payment-support-be/internal/entity"
	"payment-support-be/internal/mapper"
	"payment-support-be/internal/model"
	"payment-support-be/internal/repository/contract"
	"payment-support-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type SupportEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SupportEmbeddingMapper
}

func NewSupportEmbeddingRepository(db *gorm.DB) contract.SupportEmbeddingRepository {
	return &SupportEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewSupportEmbeddingMapper(),
	}
}

func (r *SupportEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SupportEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.SupportEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *SupportEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.SupportEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *SupportEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SupportEmbedding{}, id).Error
}

func (r *SupportEmbeddingRepositoryImpl) DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("support_entry_id = ?", entryId).Delete(&model.SupportEmbedding{}).Error
}

func (r *SupportEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SupportEmbedding, error) {
	var models []*model.SupportEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SupportEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *SupportEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.SupportEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilarWithScore runs cosine similarity search over the chunk
// embeddings. pgvector's <=> operator is cosine distance, so similarity
// is 1 - distance.
func (r *SupportEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*contract.ScoredSupportEmbedding, error) {
	if limit <= 0 {
		limit = 3
	}

	type result struct {
		model.SupportEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("support_embeddings").
		Select("support_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN support_entries ON support_entries.id = support_embeddings.support_entry_id").
		Where("support_embeddings.deleted_at IS NULL").
		Where("support_entries.deleted_at IS NULL").
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredSupportEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredSupportEmbedding{
			Embedding:  r.mapper.ToEntity(&res.SupportEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
