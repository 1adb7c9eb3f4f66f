package session

import "context"

// Store holds sessions keyed by user identity. Lock serialises event
// handling per user: no two events for the same user run concurrently while
// distinct users proceed in parallel. Implementations evict idle sessions;
// a Load after eviction returns a fresh Idle session, never an error for the
// missing key.
type Store interface {
	// Lock acquires the per-user mutex and returns the release function.
	Lock(userID int64) (unlock func())
	Load(ctx context.Context, userID int64) (Session, error)
	Save(ctx context.Context, sess Session) error
	Clear(ctx context.Context, userID int64) error
}
