// Package engine implements the per-user conversation state machine. It
// validates inbound events against the session state, orchestrates the
// catalog provider, the favorites coordinator and the renderer, and emits
// outbound messages through the transport sink. Every failure is translated
// into a user-facing message here; nothing propagates out of Handle.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	slogctx "github.com/veqryn/slog-context"

	"github.com/cinegram/cinegram/internal/catalog"
	"github.com/cinegram/cinegram/internal/favorites"
	"github.com/cinegram/cinegram/internal/session"
	"github.com/cinegram/cinegram/internal/transport"
)

// DefaultPacing is the delay between successive result messages of one
// batch, respecting transport rate limits.
const DefaultPacing = 1 * time.Second

type Option func(*Engine)

// WithPacing overrides the delay between result messages; 0 disables it.
func WithPacing(d time.Duration) Option {
	return func(e *Engine) { e.pacing = d }
}

type Engine struct {
	sessions  session.Store
	provider  catalog.Provider
	favorites *favorites.Coordinator
	sink      transport.Sink

	pacing time.Duration
}

func New(
	sessions session.Store,
	provider catalog.Provider,
	coordinator *favorites.Coordinator,
	sink transport.Sink,
	opts ...Option,
) *Engine {
	e := &Engine{
		sessions:  sessions,
		provider:  provider,
		favorites: coordinator,
		sink:      sink,
		pacing:    DefaultPacing,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Handle processes one inbound event under the per-user lock. Events for
// distinct users proceed in parallel; events for one user are serialised.
func (e *Engine) Handle(ctx context.Context, ev Event) {
	unlock := e.sessions.Lock(ev.UserID)
	defer unlock()

	ctx = slogctx.With(ctx, "user_id", ev.UserID, "correlation_id", uuid.NewString())

	sess, err := e.sessions.Load(ctx, ev.UserID)
	if err != nil {
		slogctx.Error(ctx, "Failed to load session, starting a fresh one", "error", err)
		sess = session.Session{UserID: ev.UserID}
	}

	switch p := ev.Payload.(type) {
	case CommandPayload:
		e.handleCommand(ctx, &sess, ev, p.Name)
	case TextPayload:
		e.handleText(ctx, &sess, ev, p.Value)
	case SelectionPayload:
		e.handleSelection(ctx, &sess, ev, p.Selection)
	default:
		slogctx.Debug(ctx, "Ignoring event with unknown payload")
	}

	if err := e.sessions.Save(ctx, sess); err != nil {
		slogctx.Error(ctx, "Failed to save session", "error", err)
	}
}

func (e *Engine) handleCommand(ctx context.Context, sess *session.Session, ev Event, name Command) {
	switch name {
	case CommandStart:
		e.start(ctx, sess, ev)
	case CommandHelp:
		e.sendText(ctx, ev.UserID, msgHelp, transport.Affordances{MainMenu: true})
	default:
		slogctx.Debug(ctx, "Ignoring unknown command", "command", string(name))
	}
}

func (e *Engine) handleSelection(ctx context.Context, sess *session.Session, ev Event, sel Selection) {
	switch sel.Action {
	case ActionSearchMovies:
		e.startSearch(ctx, sess, ev, catalog.KindMovie)
	case ActionSearchPersons:
		e.startSearch(ctx, sess, ev, catalog.KindPerson)
	case ActionViewFavorites:
		e.viewFavorites(ctx, sess, ev)
	case ActionHelp:
		e.sendText(ctx, ev.UserID, msgHelp, transport.Affordances{MainMenu: true})
	case ActionMainMenu:
		e.backToMenu(ctx, sess, ev)
	case ActionLimit:
		e.chooseLimit(ctx, sess, ev, sel.Limit)
	case ActionAddFavorite:
		e.addFavorite(ctx, sess, ev, sel.ItemID)
	case ActionPersonDetail:
		e.personDetail(ctx, sess, ev, sel.ItemID)
	case ActionShowFilmography:
		e.showFilmography(ctx, sess, ev)
	case ActionDeleteFavorites:
		e.promptDeletion(ctx, sess, ev)
	case ActionClearFavorites:
		e.clearFavorites(ctx, sess, ev)
	case ActionCancelDeletion:
		e.cancelDeletion(ctx, sess, ev)
	default:
		slogctx.Debug(ctx, "Ignoring unknown selection", "action", int(sel.Action))
	}
}

// handleText routes free text by the current state. Text in any other state
// is a no-op: duplicate or delayed transport delivery is expected and must
// not be an error.
func (e *Engine) handleText(ctx context.Context, sess *session.Session, ev Event, text string) {
	switch sess.State {
	case session.StateAwaitingQuery:
		e.acceptQuery(ctx, sess, ev, text)
	case session.StateAwaitingDeletion:
		e.deleteByNumbers(ctx, sess, ev, text)
	default:
		slogctx.Debug(ctx, "Ignoring free text in state", "state", sess.State.String())
	}
}

func (e *Engine) start(ctx context.Context, sess *session.Session, ev Event) {
	if err := e.favorites.RegisterUser(ctx, ev.Profile); err != nil {
		slogctx.Error(ctx, "Failed to upsert user profile", "error", err)
	}

	sess.ClearScratch()
	e.sendText(ctx, ev.UserID, greeting(ev.Profile)+"\n"+msgWelcome, transport.Affordances{MainMenu: true})
}

func (e *Engine) backToMenu(ctx context.Context, sess *session.Session, ev Event) {
	sess.ClearScratch()
	if err := e.sink.EditAffordances(ctx, ev.UserID, ev.Ref, transport.Affordances{MainMenu: true}); err != nil {
		slogctx.Debug(ctx, "Failed to edit affordances", "error", err)
	}
}

// sendText delivers and logs, never fails the transition: a lost outbound
// message must not corrupt session state.
func (e *Engine) sendText(ctx context.Context, userID int64, text string, a transport.Affordances) transport.MessageRef {
	ref, err := e.sink.SendText(ctx, userID, text, a)
	if err != nil {
		slogctx.Error(ctx, "Failed to send message", "error", err)
	}
	return ref
}

// pause waits the configured pacing delay between result messages.
func (e *Engine) pause(ctx context.Context) {
	if e.pacing <= 0 {
		return
	}
	select {
	case <-time.After(e.pacing):
	case <-ctx.Done():
	}
}
