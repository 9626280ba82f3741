// FILE: pkg/rag/search/orchestrator.go
// PURPOSE: Vector search over the knowledge base behind the Retriever contract

package search

import (
	"context"
	"fmt"
	"log"

	"payment-support-be/internal/repository/contract"
	"payment-support-be/internal/repository/specification"
	"payment-support-be/pkg/embedding"
	"payment-support-be/pkg/store"

	"github.com/google/uuid"
)

// Config encapsulates search parameters
type Config struct {
	// SimilarityFloor drops hits whose cosine similarity falls below it.
	SimilarityFloor float64
	TopK            int
}

// DefaultConfig returns default search configuration
func DefaultConfig() Config {
	return Config{
		SimilarityFloor: 0.5,
		TopK:            3,
	}
}

// Orchestrator embeds the query and runs pgvector similarity search over
// the support knowledge base.
type Orchestrator struct {
	embeddingProvider embedding.EmbeddingProvider
	entryRepo         contract.SupportEntryRepository
	embeddingRepo     contract.SupportEmbeddingRepository
	config            Config
	logger            *log.Logger
}

var _ Retriever = &Orchestrator{}

// NewOrchestrator creates a new search orchestrator
func NewOrchestrator(
	embeddingProvider embedding.EmbeddingProvider,
	entryRepo contract.SupportEntryRepository,
	embeddingRepo contract.SupportEmbeddingRepository,
	config Config,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		embeddingProvider: embeddingProvider,
		entryRepo:         entryRepo,
		embeddingRepo:     embeddingRepo,
		config:            config,
		logger:            logger,
	}
}

// Retrieve embeds the query, searches for the TopK nearest chunks above
// the similarity floor and hydrates them with their entry titles. Backend
// failures come back as ErrUnavailable; an empty knowledge base does not.
func (o *Orchestrator) Retrieve(ctx context.Context, query string) ([]store.Document, error) {
	embeddingRes, err := o.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		o.logger.Printf("[ERROR] Query embedding failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	scored, err := o.embeddingRepo.SearchSimilarWithScore(
		ctx,
		embeddingRes.Embedding.Values,
		o.config.TopK,
		o.config.SimilarityFloor,
	)
	if err != nil {
		o.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	o.logger.Printf("[DEBUG] Vector search: %d hits above floor %.2f", len(scored), o.config.SimilarityFloor)

	docs := o.toDocuments(scored)
	if err := o.hydrateTitles(ctx, docs); err != nil {
		o.logger.Printf("[WARN] Failed to hydrate titles: %v", err)
	}
	return docs, nil
}

// toDocuments deduplicates chunks by their owning entry, keeping the best
// scoring chunk per entry. Results arrive ordered by similarity so the
// first occurrence wins.
func (o *Orchestrator) toDocuments(scored []*contract.ScoredSupportEmbedding) []store.Document {
	docs := make([]store.Document, 0, len(scored))
	seen := make(map[string]bool)

	for _, res := range scored {
		entryId := res.Embedding.SupportEntryId.String()
		if seen[entryId] {
			continue
		}
		seen[entryId] = true

		docs = append(docs, store.Document{
			ID:    entryId,
			Text:  res.Embedding.Chunk,
			Score: res.Similarity,
		})
		o.logger.Printf("[DEBUG] Hit entry=%s score=%.4f", entryId, res.Similarity)
	}
	return docs
}

func (o *Orchestrator) hydrateTitles(ctx context.Context, docs []store.Document) error {
	if len(docs) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(docs))
	for i, d := range docs {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return err
		}
		ids[i] = id
	}

	entries, err := o.entryRepo.FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return err
	}

	titles := make(map[string]string, len(entries))
	for _, e := range entries {
		titles[e.Id.String()] = e.Title
	}

	for i := range docs {
		if title, ok := titles[docs[i].ID]; ok {
			docs[i].Title = title
		} else {
			docs[i].Title = "Untitled entry"
		}
	}
	return nil
}
