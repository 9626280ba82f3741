package contract

import (
	"context"

	"payment-support-be/internal/entity"
	"payment-support-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SupportEntryRepository interface {
	Create(ctx context.Context, entry *entity.SupportEntry) error
	Update(ctx context.Context, entry *entity.SupportEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SupportEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SupportEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
