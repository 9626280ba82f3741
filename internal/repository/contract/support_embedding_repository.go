package contract

import (
	"context"

	"payment-support-be/internal/entity"
	"payment-support-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredSupportEmbedding wraps SupportEmbedding with its similarity score
type ScoredSupportEmbedding struct {
	Embedding  *entity.SupportEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type SupportEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.SupportEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.SupportEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SupportEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns embeddings with their cosine
	// similarity, ordered best first and filtered by threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredSupportEmbedding, error)
}
