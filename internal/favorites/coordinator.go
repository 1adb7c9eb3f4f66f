package favorites

import (
	"context"
	"errors"
	"fmt"
	"strings"

	slogctx "github.com/veqryn/slog-context"

	"github.com/cinegram/cinegram/internal/catalog"
	"github.com/cinegram/cinegram/internal/serviceerr"
)

// MaxEntries caps the favorites list per user. Enforced here, before the
// write, not in the repository.
const MaxEntries = 10

// Coordinator owns the favorites invariants: the capacity cap, the
// (user, movie) uniqueness and the snapshot-indexed deletion protocol.
type Coordinator struct {
	repo Repository
}

func NewCoordinator(repo Repository) *Coordinator {
	return &Coordinator{repo: repo}
}

// RegisterUser records the transport identity, refreshing the display
// fields on every observed start.
func (c *Coordinator) RegisterUser(ctx context.Context, user User) error {
	if err := c.repo.UpsertUser(ctx, user); err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}

	return nil
}

// Add inserts one movie into the user's favorites. It returns
// serviceerr.ErrCapacity when the list is full (no write attempted) and
// serviceerr.ErrDuplicate when the movie is already present; the duplicate is
// a normal outcome, not a storage failure.
//
// The capacity check and the insert are two storage calls. Two truly
// concurrent adds for one user could both observe count=9 and both succeed;
// the per-user event serialisation upstream makes that unreachable from a
// single chat, so the narrow race is accepted.
func (c *Coordinator) Add(ctx context.Context, userID int64, m catalog.Movie) error {
	count, err := c.repo.CountFavorites(ctx, userID)
	if err != nil {
		return fmt.Errorf("counting favorites: %w", err)
	}
	if count >= MaxEntries {
		return serviceerr.ErrCapacity
	}

	entry := Entry{
		UserID:      userID,
		MovieID:     m.ID,
		Title:       m.Name,
		ReleaseYear: m.Year,
		Genres:      strings.Join(m.Genres, ", "),
		Country:     strings.Join(m.Countries, ", "),
	}
	if err := c.repo.InsertFavorite(ctx, entry); err != nil {
		if errors.Is(err, serviceerr.ErrDuplicate) {
			return serviceerr.ErrDuplicate
		}
		return fmt.Errorf("inserting favorite: %w", err)
	}

	return nil
}

// List returns the user's favorites in insertion order. The returned slice is
// the snapshot that position-indexed deletion resolves against.
func (c *Coordinator) List(ctx context.Context, userID int64) ([]Entry, error) {
	entries, err := c.repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}

	return entries, nil
}

// DeleteByPositions deletes the snapshot entries at the given 1-based
// positions, by durable id, and returns the titles of the entries actually
// deleted. An entry already removed by a concurrent action is skipped
// silently; one missing entry never aborts the batch. Positions outside
// [1, len(snapshot)] yield serviceerr.ErrValidation.
func (c *Coordinator) DeleteByPositions(ctx context.Context, snapshot []Entry, positions []int) ([]string, error) {
	for _, pos := range positions {
		if pos < 1 || pos > len(snapshot) {
			return nil, fmt.Errorf("%w: position %d out of range", serviceerr.ErrValidation, pos)
		}
	}

	var deleted []string
	for _, pos := range positions {
		entry := snapshot[pos-1]
		if err := c.repo.DeleteFavoriteByID(ctx, entry.ID); err != nil {
			if errors.Is(err, serviceerr.ErrNotFound) {
				slogctx.Debug(ctx, "favorite already removed, skipping", "entry_id", entry.ID)
				continue
			}
			return deleted, fmt.Errorf("deleting favorite %d: %w", entry.ID, err)
		}
		deleted = append(deleted, entry.Title)
	}

	return deleted, nil
}

// ClearAll removes every favorite of the user. Clearing an empty list is not
// an error.
func (c *Coordinator) ClearAll(ctx context.Context, userID int64) error {
	if err := c.repo.DeleteAllFavorites(ctx, userID); err != nil {
		return fmt.Errorf("clearing favorites: %w", err)
	}

	return nil
}
