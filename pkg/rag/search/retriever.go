// FILE: pkg/rag/search/retriever.go
// PURPOSE: Contract between the routing pipeline and any retrieval backend

package search

import (
	"context"
	"errors"

	"payment-support-be/pkg/store"
)

// ErrUnavailable signals that the retrieval backend could not be reached.
// Routing degrades to an ungrounded answer instead of failing the turn.
var ErrUnavailable = errors.New("retrieval backend unavailable")

// Retriever returns the documents most similar to the query, best first.
// An empty slice is a valid result and distinct from an error.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]store.Document, error)
}
