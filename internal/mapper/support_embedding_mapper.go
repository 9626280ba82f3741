package mapper

import (
	"payment-support-be/internal/entity"
	"payment-support-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type SupportEmbeddingMapper struct{}

func NewSupportEmbeddingMapper() *SupportEmbeddingMapper {
	return &SupportEmbeddingMapper{}
}

func (m *SupportEmbeddingMapper) ToEntity(e *model.SupportEmbedding) *entity.SupportEmbedding {
	if e == nil {
		return nil
	}
	return &entity.SupportEmbedding{
		Id:             e.Id,
		Chunk:          e.Chunk,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		SupportEntryId: e.SupportEntryId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *SupportEmbeddingMapper) ToModel(e *entity.SupportEmbedding) *model.SupportEmbedding {
	if e == nil {
		return nil
	}
	return &model.SupportEmbedding{
		Id:             e.Id,
		Chunk:          e.Chunk,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		SupportEntryId: e.SupportEntryId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *SupportEmbeddingMapper) ToModels(embeddings []*entity.SupportEmbedding) []*model.SupportEmbedding {
	models := make([]*model.SupportEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
