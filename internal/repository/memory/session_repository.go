package memory

import (
	"time"

	"payment-support-be/pkg/rag/state"

	"github.com/patrickmn/go-cache"
)

// SessionRepository holds live conversation state. Entries expire after
// an hour of inactivity; the persisted transcript survives in Postgres.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(conv *state.Conversation) {
	r.cache.Set(conv.ID.String(), conv, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*state.Conversation, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*state.Conversation), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
