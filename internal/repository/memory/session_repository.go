package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionRepository remembers the current conversation of each user handle
// so the chat path can skip the is_active lookup on every message.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) SetCurrent(handle string, conversationID uuid.UUID) {
	r.cache.Set(handle, conversationID, cache.DefaultExpiration)
}

func (r *SessionRepository) Current(handle string) (uuid.UUID, bool) {
	if x, found := r.cache.Get(handle); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}

func (r *SessionRepository) Forget(handle string) {
	r.cache.Delete(handle)
}
