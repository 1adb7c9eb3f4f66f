package engine

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	slogctx "github.com/veqryn/slog-context"

	"github.com/cinegram/cinegram/internal/catalog"
	"github.com/cinegram/cinegram/internal/render"
	"github.com/cinegram/cinegram/internal/session"
	"github.com/cinegram/cinegram/internal/transport"
)

// limitChoices are the only result counts the limit keyboard offers; any
// other value in a selection is ignored as a forged or stale callback.
var limitChoices = []int{1, 3, 5, 10, 15, 20}

// queryAllowlist accepts latin and cyrillic letters, digits, hyphen and
// space. Anything else rejects the query as a whole instead of being
// silently stripped.
var queryAllowlist = regexp.MustCompile(`^[A-Za-zА-Яа-я0-9\- ]+$`)

func (e *Engine) startSearch(ctx context.Context, sess *session.Session, ev Event, kind catalog.Kind) {
	sess.ClearScratch()
	sess.State = session.StateAwaitingQuery
	sess.Kind = kind

	prompt := msgAskMovieQuery
	if kind == catalog.KindPerson {
		prompt = msgAskPersonQuery
	}
	e.sendText(ctx, ev.UserID, prompt, transport.Affordances{})
}

func (e *Engine) acceptQuery(ctx context.Context, sess *session.Session, ev Event, text string) {
	query := strings.TrimSpace(text)
	if query == "" || !queryAllowlist.MatchString(query) {
		slogctx.Debug(ctx, "Rejected search query", "kind", sess.Kind.String())
		e.sendText(ctx, ev.UserID, msgInvalidQuery, transport.Affordances{})
		return
	}

	sess.Query = query
	sess.State = session.StateAwaitingLimit

	prompt := msgAskMovieLimit
	if sess.Kind == catalog.KindPerson {
		prompt = msgAskPersonLimit
	}
	sess.PromptRef = e.sendText(ctx, ev.UserID, prompt, transport.Affordances{LimitChoices: limitChoices})
}

func (e *Engine) chooseLimit(ctx context.Context, sess *session.Session, ev Event, limit int) {
	if sess.State != session.StateAwaitingLimit || !slices.Contains(limitChoices, limit) {
		slogctx.Debug(ctx, "Ignoring limit selection", "state", sess.State.String(), "limit", limit)
		return
	}

	if sess.PromptRef != 0 {
		if err := e.sink.DeleteMessage(ctx, ev.UserID, sess.PromptRef); err != nil {
			slogctx.Debug(ctx, "Failed to delete limit prompt", "error", err)
		}
		sess.PromptRef = 0
	}

	e.runSearch(ctx, sess, ev, limit)
}

func (e *Engine) runSearch(ctx context.Context, sess *session.Session, ev Event, limit int) {
	kind, query := sess.Kind, sess.Query

	searchingRef := e.sendText(ctx, ev.UserID, msgSearching, transport.Affordances{})

	var units []render.Unit
	var stale bool
	var err error
	switch kind {
	case catalog.KindPerson:
		var persons []catalog.Person
		persons, err = e.provider.SearchPersons(ctx, query, limit)
		if err == nil {
			if stale = e.searchOutdated(ctx, sess, kind, query); !stale {
				sess.Persons = persons
				for _, p := range persons {
					units = append(units, render.PersonUnit(p))
				}
			}
		}
	default:
		var movies []catalog.Movie
		movies, err = e.provider.SearchMovies(ctx, query, limit)
		if err == nil {
			if stale = e.searchOutdated(ctx, sess, kind, query); !stale {
				sess.Movies = movies
				for _, m := range movies {
					units = append(units, render.MovieUnit(m))
				}
			}
		}
	}

	// The progress message goes away on every outcome, a dropped stale
	// response included.
	if searchingRef != 0 {
		if err := e.sink.DeleteMessage(ctx, ev.UserID, searchingRef); err != nil {
			slogctx.Debug(ctx, "Failed to delete progress message", "error", err)
		}
	}

	if stale {
		return
	}

	if err != nil {
		var provErr *catalog.ProviderError
		if errors.As(err, &provErr) {
			slogctx.Error(ctx, "Catalog search failed", "status", provErr.Status, "kind", kind.String())
		} else {
			slogctx.Error(ctx, "Catalog search failed", "error", err, "kind", kind.String())
		}
		e.sendText(ctx, ev.UserID, msgSearchFailed, transport.Affordances{MainMenu: true})
		sess.ClearScratch()
		return
	}

	if len(units) == 0 {
		noun := "фильме"
		if kind == catalog.KindPerson {
			noun = "человеке"
		}
		e.sendText(ctx, ev.UserID, msgNotFound(noun, query), transport.Affordances{MainMenu: true})
		sess.ClearScratch()
		return
	}

	e.emitResults(ctx, ev.UserID, units)

	done := msgMoviesSent
	if kind == catalog.KindPerson {
		done = msgPersonsSent
	}
	e.sendText(ctx, ev.UserID, done, transport.Affordances{MainMenu: true})

	sess.State = session.StateResultsPresented
}

// searchOutdated drops a provider response that returned after the session
// moved on, e.g. when a new top-level command arrived while the call was in
// flight. The stored session is the authority on what the user awaits now.
func (e *Engine) searchOutdated(ctx context.Context, sess *session.Session, kind catalog.Kind, query string) bool {
	stored, err := e.sessions.Load(ctx, sess.UserID)
	if err != nil {
		slogctx.Error(ctx, "Failed to re-check session state", "error", err)
		return false
	}
	if stored.State != session.StateAwaitingLimit || stored.Kind != kind || stored.Query != query {
		slogctx.Info(ctx, "Dropping stale search response",
			"state", stored.State.String(), "kind", kind.String())
		sess.ClearScratch()
		return true
	}

	return false
}

// emitResults sends one message per rendered unit, in result order, with the
// pacing delay between successive messages.
func (e *Engine) emitResults(ctx context.Context, userID int64, units []render.Unit) {
	for i, unit := range units {
		if i > 0 {
			e.pause(ctx)
		}
		if unit.ImageRef != "" {
			if _, err := e.sink.SendMedia(ctx, userID, unit.ImageRef, unit.Caption, unit.Affordances); err != nil {
				slogctx.Error(ctx, "Failed to send result", "error", err)
			}
			continue
		}
		e.sendText(ctx, userID, unit.Caption, unit.Affordances)
	}
}

func (e *Engine) personDetail(ctx context.Context, sess *session.Session, ev Event, id int64) {
	if sess.State != session.StateResultsPresented || sess.Kind != catalog.KindPerson {
		slogctx.Debug(ctx, "Ignoring detail selection", "state", sess.State.String())
		return
	}

	person, err := e.provider.PersonDetail(ctx, id)
	if err != nil {
		slogctx.Error(ctx, "Failed to fetch person detail", "error", err, "person_id", id)
		e.sendText(ctx, ev.UserID, msgPersonDetailFailed, transport.Affordances{MainMenu: true})
		return
	}

	// The detail caption routinely exceeds the attachment-caption limit, so
	// the photo goes out on its own and the text as a plain message.
	unit := render.PersonDetailUnit(person)
	if unit.ImageRef != "" {
		if _, err := e.sink.SendMedia(ctx, ev.UserID, unit.ImageRef, "", transport.Affordances{}); err != nil {
			slogctx.Error(ctx, "Failed to send person photo", "error", err)
		}
	}
	e.sendText(ctx, ev.UserID, unit.Caption, unit.Affordances)

	if err := e.sink.DeleteMessage(ctx, ev.UserID, ev.Ref); err != nil {
		slogctx.Debug(ctx, "Failed to delete search result message", "error", err)
	}

	sess.PersonDetail = &person
}

func (e *Engine) showFilmography(ctx context.Context, sess *session.Session, ev Event) {
	if sess.PersonDetail == nil {
		e.sendText(ctx, ev.UserID, msgNoFilmography, transport.Affordances{MainMenu: true})
		return
	}

	lines := render.FilmographyLines(sess.PersonDetail.Movies)
	if lines == "" {
		e.sendText(ctx, ev.UserID, msgNoFilmography, transport.Affordances{MainMenu: true})
		return
	}

	header := msgFilmographyHeader(sess.PersonDetail.Name)
	if utf8.RuneCountInString(lines) <= render.MessageLimit-utf8.RuneCountInString(header)-1 {
		e.sendText(ctx, ev.UserID, header+"\n"+lines, transport.Affordances{MainMenu: true})
		return
	}

	e.sendText(ctx, ev.UserID, header, transport.Affordances{})
	for _, segment := range render.SplitMessage(lines, render.MessageLimit) {
		e.sendText(ctx, ev.UserID, segment, transport.Affordances{MainMenu: true})
	}
}
