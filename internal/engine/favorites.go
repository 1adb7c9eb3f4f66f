package engine

import (
	"context"
	"errors"
	"strconv"
	"strings"

	slogctx "github.com/veqryn/slog-context"

	"github.com/cinegram/cinegram/internal/catalog"
	"github.com/cinegram/cinegram/internal/render"
	"github.com/cinegram/cinegram/internal/serviceerr"
	"github.com/cinegram/cinegram/internal/session"
	"github.com/cinegram/cinegram/internal/transport"
)

func (e *Engine) addFavorite(ctx context.Context, sess *session.Session, ev Event, movieID int64) {
	if sess.State != session.StateResultsPresented || sess.Kind != catalog.KindMovie {
		slogctx.Debug(ctx, "Ignoring favorite selection", "state", sess.State.String())
		return
	}

	idx := -1
	for i, m := range sess.Movies {
		if m.ID == movieID {
			idx = i
			break
		}
	}
	if idx < 0 {
		// The button referenced a movie that is not part of the presented
		// result set, most likely a callback from a previous search.
		slogctx.Info(ctx, "Favorite selection outside result set", "movie_id", movieID)
		e.sendText(ctx, ev.UserID, msgMovieNotInSet, transport.Affordances{})
		return
	}

	movie := sess.Movies[idx]
	err := e.favorites.Add(ctx, ev.UserID, movie)
	switch {
	case errors.Is(err, serviceerr.ErrCapacity):
		e.sendText(ctx, ev.UserID, msgCapacityReached, transport.Affordances{})
	case errors.Is(err, serviceerr.ErrDuplicate):
		e.sendText(ctx, ev.UserID, msgAlreadyFavorite(movie.Name), transport.Affordances{})
	case errors.Is(err, serviceerr.ErrNotFound):
		e.sendText(ctx, ev.UserID, msgUserNotFound, transport.Affordances{})
	case err != nil:
		slogctx.Error(ctx, "Failed to store favorite", "error", err, "movie_id", movieID)
		e.sendText(ctx, ev.UserID, msgStorageFailed, transport.Affordances{})
	default:
		e.sendText(ctx, ev.UserID, msgAdded(movie.Name), transport.Affordances{})
		// Drop the inline button so the same card cannot be added twice by
		// tapping again; a failure here only leaves a dead button behind.
		if err := e.sink.EditAffordances(ctx, ev.UserID, ev.Ref, transport.Affordances{}); err != nil {
			slogctx.Debug(ctx, "Failed to strip favorite button", "error", err)
		}
	}
}

func (e *Engine) viewFavorites(ctx context.Context, sess *session.Session, ev Event) {
	sess.ClearScratch()

	entries, err := e.favorites.List(ctx, ev.UserID)
	if err != nil {
		slogctx.Error(ctx, "Failed to list favorites", "error", err)
		e.sendText(ctx, ev.UserID, msgStorageFailed, transport.Affordances{MainMenu: true})
		return
	}
	if len(entries) == 0 {
		e.sendText(ctx, ev.UserID, msgFavoritesEmpty, transport.Affordances{MainMenu: true})
		return
	}

	sess.Favorites = entries
	e.sendText(ctx, ev.UserID, render.FavoritesList(entries), transport.Affordances{
		DeleteFavorites: true,
		BackToMenu:      true,
	})
}

func (e *Engine) promptDeletion(ctx context.Context, sess *session.Session, ev Event) {
	if len(sess.Favorites) == 0 {
		slogctx.Debug(ctx, "Ignoring deletion request without a favorites snapshot")
		return
	}

	sess.State = session.StateAwaitingDeletion
	e.sendText(ctx, ev.UserID, msgAskNumbers, transport.Affordances{ConfirmClear: true})
}

func (e *Engine) deleteByNumbers(ctx context.Context, sess *session.Session, ev Event, text string) {
	positions, ok := parsePositions(text)
	if !ok {
		e.sendText(ctx, ev.UserID, msgInvalidNumbers, transport.Affordances{ConfirmClear: true})
		return
	}

	titles, err := e.favorites.DeleteByPositions(ctx, sess.Favorites, positions)
	switch {
	case errors.Is(err, serviceerr.ErrValidation):
		var outOfRange []int
		for _, pos := range positions {
			if pos < 1 || pos > len(sess.Favorites) {
				outOfRange = append(outOfRange, pos)
			}
		}
		e.sendText(ctx, ev.UserID, msgPositionsMissing(outOfRange), transport.Affordances{ConfirmClear: true})
		return
	case err != nil:
		slogctx.Error(ctx, "Failed to delete favorites", "error", err)
		e.sendText(ctx, ev.UserID, msgStorageFailed, transport.Affordances{MainMenu: true})
	case len(titles) == 0:
		e.sendText(ctx, ev.UserID, msgNothingDeleted, transport.Affordances{MainMenu: true})
	default:
		e.sendText(ctx, ev.UserID, msgDeleted(titles), transport.Affordances{MainMenu: true})
	}

	sess.ClearScratch()
}

// clearFavorites fires from any state. An old inline button is still a
// working one; the user asked for the list to be emptied either way.
func (e *Engine) clearFavorites(ctx context.Context, sess *session.Session, ev Event) {
	if err := e.favorites.ClearAll(ctx, ev.UserID); err != nil {
		slogctx.Error(ctx, "Failed to clear favorites", "error", err)
		e.sendText(ctx, ev.UserID, msgStorageFailed, transport.Affordances{MainMenu: true})
	} else {
		e.sendText(ctx, ev.UserID, msgFavoritesClear, transport.Affordances{MainMenu: true})
	}

	sess.ClearScratch()
}

func (e *Engine) cancelDeletion(ctx context.Context, sess *session.Session, ev Event) {
	if sess.State != session.StateAwaitingDeletion {
		return
	}

	e.sendText(ctx, ev.UserID, msgDeletionStopped, transport.Affordances{MainMenu: true})
	sess.ClearScratch()
}

// parsePositions parses a comma separated list of 1-based positions, e.g.
// "1, 3,4". An empty list or any non-numeric element fails the whole input.
func parsePositions(text string) ([]int, bool) {
	parts := strings.Split(text, ",")
	positions := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, false
		}
		positions = append(positions, n)
	}
	if len(positions) == 0 {
		return nil, false
	}

	return positions, true
}
