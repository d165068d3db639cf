package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"voiceread-be/pkg/command"
)

// ISessionRepository stores the per-client disambiguation session between
// voice command turns.
type ISessionRepository interface {
	GetOrCreate(id string) *command.Session
	Save(session *command.Session)
	Delete(id string)
}

type sessionRepository struct {
	store *cache.Cache
}

// NewSessionRepository keeps sessions in memory with a 1 hour sliding
// expiration. Abandoned file listings simply fall out of the cache.
func NewSessionRepository() ISessionRepository {
	return &sessionRepository{
		store: cache.New(1*time.Hour, 10*time.Minute),
	}
}

func (r *sessionRepository) GetOrCreate(id string) *command.Session {
	if id == "" {
		id = command.DefaultSessionID
	}
	if found, ok := r.store.Get(id); ok {
		if sess, ok := found.(*command.Session); ok {
			return sess
		}
	}
	sess := command.NewSession(id)
	r.store.Set(id, sess, cache.DefaultExpiration)
	return sess
}

func (r *sessionRepository) Save(session *command.Session) {
	r.store.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *sessionRepository) Delete(id string) {
	r.store.Delete(id)
}
