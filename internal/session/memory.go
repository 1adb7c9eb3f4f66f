package session

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const DefaultIdleTTL = 30 * time.Minute

// MemoryStore keeps sessions in process memory with idle-based eviction.
// It is the default store for a single-instance deployment; sessions do not
// survive a restart.
type MemoryStore struct {
	cache *gocache.Cache
	locks *LockTable
}

var _ = Store(&MemoryStore{})

func NewMemoryStore(idleTTL time.Duration) *MemoryStore {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &MemoryStore{
		cache: gocache.New(idleTTL, idleTTL),
		locks: NewLockTable(),
	}
}

func (s *MemoryStore) Lock(userID int64) func() {
	return s.locks.Lock(userID)
}

func (s *MemoryStore) Load(_ context.Context, userID int64) (Session, error) {
	if v, ok := s.cache.Get(key(userID)); ok {
		return v.(Session), nil
	}

	return Session{UserID: userID}, nil
}

// Save stores the session and refreshes its idle TTL.
func (s *MemoryStore) Save(_ context.Context, sess Session) error {
	s.cache.Set(key(sess.UserID), sess, gocache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID int64) error {
	s.cache.Delete(key(userID))
	return nil
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
