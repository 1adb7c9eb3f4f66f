package favoritesmock

import (
	"context"
	"sync"

	"github.com/cinegram/cinegram/internal/favorites"
	"github.com/cinegram/cinegram/internal/serviceerr"
)

type RepositoryOption func(*Repository)

type Repository struct {
	mu      sync.Mutex
	users   map[int64]favorites.User
	entries []favorites.Entry
	nextID  int64

	upsertUserErr, countErr, insertErr, listErr, deleteErr, deleteAllErr error
}

func WithEntry(entry favorites.Entry) RepositoryOption {
	return func(r *Repository) {
		if entry.ID == 0 {
			entry.ID = r.nextID
		}
		if entry.ID >= r.nextID {
			r.nextID = entry.ID + 1
		}
		r.entries = append(r.entries, entry)
	}
}
func WithUpsertUserError(err error) RepositoryOption {
	return func(r *Repository) { r.upsertUserErr = err }
}
func WithCountError(err error) RepositoryOption {
	return func(r *Repository) { r.countErr = err }
}
func WithInsertError(err error) RepositoryOption {
	return func(r *Repository) { r.insertErr = err }
}
func WithListError(err error) RepositoryOption {
	return func(r *Repository) { r.listErr = err }
}
func WithDeleteError(err error) RepositoryOption {
	return func(r *Repository) { r.deleteErr = err }
}
func WithDeleteAllError(err error) RepositoryOption {
	return func(r *Repository) { r.deleteAllErr = err }
}

var _ = favorites.Repository(&Repository{})

func NewInMemRepository(opts ...RepositoryOption) *Repository {
	r := &Repository{
		users:  make(map[int64]favorites.User),
		nextID: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Repository) UpsertUser(_ context.Context, user favorites.User) error {
	if r.upsertUserErr != nil {
		return r.upsertUserErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *Repository) CountFavorites(_ context.Context, userID int64) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, e := range r.entries {
		if e.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *Repository) InsertFavorite(_ context.Context, entry favorites.Entry) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.UserID == entry.UserID && e.MovieID == entry.MovieID {
			return serviceerr.ErrDuplicate
		}
	}
	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, entry)
	return nil
}

func (r *Repository) ListFavorites(_ context.Context, userID int64) ([]favorites.Entry, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []favorites.Entry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *Repository) DeleteFavoriteByID(_ context.Context, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return serviceerr.ErrNotFound
}

func (r *Repository) DeleteAllFavorites(_ context.Context, userID int64) error {
	if r.deleteAllErr != nil {
		return r.deleteAllErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}
