package unitofwork

import (
	"context"

	"payment-support-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SupportEntryRepository() contract.SupportEntryRepository
	SupportEmbeddingRepository() contract.SupportEmbeddingRepository
	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
}
