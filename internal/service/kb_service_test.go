package service

import (
	"context"
	"encoding/json"
	"testing"

	"payment-support-be/internal/dto"
	"payment-support-be/internal/entity"
	"payment-support-be/internal/repository/contract"
	"payment-support-be/internal/repository/specification"
	"payment-support-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntryRepo struct {
	entries map[uuid.UUID]*entity.SupportEntry
	deleted []uuid.UUID
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: map[uuid.UUID]*entity.SupportEntry{}}
}

func (r *fakeEntryRepo) Create(ctx context.Context, entry *entity.SupportEntry) error {
	r.entries[entry.Id] = entry
	return nil
}

func (r *fakeEntryRepo) Update(ctx context.Context, entry *entity.SupportEntry) error {
	r.entries[entry.Id] = entry
	return nil
}

func (r *fakeEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.entries, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeEntryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SupportEntry, error) {
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			return r.entries[byId.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeEntryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SupportEntry, error) {
	out := make([]*entity.SupportEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEntryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.entries)), nil
}

type fakeEmbeddingRepo struct {
	contract.SupportEmbeddingRepository
	deletedEntryIds []uuid.UUID
}

func (r *fakeEmbeddingRepo) DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error {
	r.deletedEntryIds = append(r.deletedEntryIds, entryId)
	return nil
}

type fakeUow struct {
	entryRepo     *fakeEntryRepo
	embeddingRepo *fakeEmbeddingRepo
	began         bool
	committed     bool
	rolledBack    bool
}

func (u *fakeUow) Begin(ctx context.Context) error { u.began = true; return nil }
func (u *fakeUow) Commit() error                   { u.committed = true; return nil }
func (u *fakeUow) Rollback() error {
	if !u.committed {
		u.rolledBack = true
	}
	return nil
}

func (u *fakeUow) SupportEntryRepository() contract.SupportEntryRepository {
	return u.entryRepo
}

func (u *fakeUow) SupportEmbeddingRepository() contract.SupportEmbeddingRepository {
	return u.embeddingRepo
}

func (u *fakeUow) ChatSessionRepository() contract.ChatSessionRepository { return nil }
func (u *fakeUow) ChatMessageRepository() contract.ChatMessageRepository { return nil }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newKbTestService() (IKnowledgeBaseService, *fakeUow, *capturingPublisher) {
	uow := &fakeUow{
		entryRepo:     newFakeEntryRepo(),
		embeddingRepo: &fakeEmbeddingRepo{},
	}
	publisher := &capturingPublisher{}
	svc := NewKnowledgeBaseService(&fakeUowFactory{uow: uow}, publisher, nil)
	return svc, uow, publisher
}

func TestKnowledgeBaseServiceCreateQueuesEmbedding(t *testing.T) {
	svc, uow, publisher := newKbTestService()

	res, err := svc.Create(context.Background(), &dto.CreateSupportEntryRequest{
		Title:    "Daily transfer limits",
		Content:  "Standard accounts may transfer up to $5,000 per day.",
		Category: "limits",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Contains(t, uow.entryRepo.entries, res.Id)

	require.Len(t, publisher.payloads, 1)
	var msg dto.PublishEmbedEntryMessage
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &msg))
	assert.Equal(t, res.Id, msg.SupportEntryId)
}

func TestKnowledgeBaseServiceShowNotFound(t *testing.T) {
	svc, _, _ := newKbTestService()

	res, err := svc.Show(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Equal(t, "support entry not found", err.Error())
}

func TestKnowledgeBaseServiceUpdateRequeuesEmbedding(t *testing.T) {
	svc, uow, publisher := newKbTestService()

	id := uuid.New()
	uow.entryRepo.entries[id] = &entity.SupportEntry{Id: id, Title: "old", Content: "old content"}

	res, err := svc.Update(context.Background(), &dto.UpdateSupportEntryRequest{
		Id:      id,
		Title:   "Card blocking",
		Content: "You can block a lost card from the app.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Card blocking", res.Title)
	assert.Len(t, publisher.payloads, 1)
}

func TestKnowledgeBaseServiceDeleteRemovesEmbeddings(t *testing.T) {
	svc, uow, _ := newKbTestService()

	id := uuid.New()
	uow.entryRepo.entries[id] = &entity.SupportEntry{Id: id, Title: "Refunds", Content: "Refunds take 5-7 days."}

	require.NoError(t, svc.Delete(context.Background(), id))

	assert.Equal(t, []uuid.UUID{id}, uow.embeddingRepo.deletedEntryIds)
	assert.Equal(t, []uuid.UUID{id}, uow.entryRepo.deleted)
	assert.True(t, uow.committed)
	assert.False(t, uow.rolledBack)
}
