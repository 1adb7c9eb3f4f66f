// Package telegram adapts the conversation engine to the Telegram Bot API
// via telebot. Outbound it implements transport.Sink; inbound it maps
// updates into engine events and dispatches them on the engine.
package telegram

import (
	"context"
	"strconv"
	"time"

	slogctx "github.com/veqryn/slog-context"
	tele "gopkg.in/telebot.v4"

	"github.com/cinegram/cinegram/internal/engine"
	"github.com/cinegram/cinegram/internal/favorites"
	"github.com/cinegram/cinegram/internal/transport"
)

// Handler consumes mapped inbound events. Satisfied by *engine.Engine.
type Handler interface {
	Handle(ctx context.Context, ev engine.Event)
}

type Adapter struct {
	bot     *tele.Bot
	handler Handler
}

var _ = transport.Sink(&Adapter{})

// New builds the bot with long polling and registers the update handlers.
// The adapter does not start polling; call Start.
func New(token string, pollTimeout time.Duration) (*Adapter, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:     token,
		Poller:    &tele.LongPoller{Timeout: pollTimeout},
		ParseMode: tele.ModeHTML,
	})
	if err != nil {
		return nil, err
	}

	return &Adapter{bot: bot}, nil
}

// Start begins long polling and blocks until ctx is cancelled. The handler
// is attached here rather than in New because the engine needs the adapter
// as its sink first.
func (a *Adapter) Start(ctx context.Context, handler Handler) {
	a.handler = handler

	a.bot.Handle("/start", func(c tele.Context) error {
		a.dispatch(ctx, c, engine.CommandPayload{Name: engine.CommandStart})
		return nil
	})
	a.bot.Handle("/help", func(c tele.Context) error {
		a.dispatch(ctx, c, engine.CommandPayload{Name: engine.CommandHelp})
		return nil
	})
	a.bot.Handle(tele.OnText, func(c tele.Context) error {
		a.dispatch(ctx, c, engine.TextPayload{Value: c.Text()})
		return nil
	})
	a.bot.Handle(tele.OnCallback, func(c tele.Context) error {
		sel, ok := parseCallback(c.Callback())
		if ok {
			a.dispatch(ctx, c, engine.SelectionPayload{Selection: sel})
		}
		return c.Respond()
	})

	go func() {
		<-ctx.Done()
		a.bot.Stop()
	}()

	a.bot.Start()
}

func (a *Adapter) dispatch(ctx context.Context, c tele.Context, payload engine.Payload) {
	sender := c.Sender()
	if sender == nil {
		return
	}

	ev := engine.Event{
		UserID:  sender.ID,
		Payload: payload,
	}
	if msg := c.Message(); msg != nil {
		ev.Ref = transport.MessageRef(msg.ID)
	}
	if _, ok := payload.(engine.CommandPayload); ok {
		ev.Profile = favorites.User{
			ID:        sender.ID,
			Username:  sender.Username,
			FirstName: sender.FirstName,
			LastName:  sender.LastName,
		}
	}

	a.handler.Handle(ctx, ev)
}

// parseCallback maps a pressed inline button to an engine selection. Data
// created by markup is "\f<unique>|<payload>"; telebot strips the prefix
// into Callback.Unique and leaves the payload in Callback.Data.
func parseCallback(cb *tele.Callback) (engine.Selection, bool) {
	if cb == nil {
		return engine.Selection{}, false
	}

	switch cb.Unique {
	case cbSearchMovies:
		return engine.Selection{Action: engine.ActionSearchMovies}, true
	case cbSearchPersons:
		return engine.Selection{Action: engine.ActionSearchPersons}, true
	case cbFavorites:
		return engine.Selection{Action: engine.ActionViewFavorites}, true
	case cbHelp:
		return engine.Selection{Action: engine.ActionHelp}, true
	case cbMenu:
		return engine.Selection{Action: engine.ActionMainMenu}, true
	case cbLimit:
		n, err := strconv.Atoi(cb.Data)
		if err != nil {
			return engine.Selection{}, false
		}
		return engine.Selection{Action: engine.ActionLimit, Limit: n}, true
	case cbAddFavorite:
		id, err := strconv.ParseInt(cb.Data, 10, 64)
		if err != nil {
			return engine.Selection{}, false
		}
		return engine.Selection{Action: engine.ActionAddFavorite, ItemID: id}, true
	case cbDetail:
		id, err := strconv.ParseInt(cb.Data, 10, 64)
		if err != nil {
			return engine.Selection{}, false
		}
		return engine.Selection{Action: engine.ActionPersonDetail, ItemID: id}, true
	case cbFilmography:
		return engine.Selection{Action: engine.ActionShowFilmography}, true
	case cbDelete:
		return engine.Selection{Action: engine.ActionDeleteFavorites}, true
	case cbClear:
		return engine.Selection{Action: engine.ActionClearFavorites}, true
	case cbCancel:
		return engine.Selection{Action: engine.ActionCancelDeletion}, true
	}

	return engine.Selection{}, false
}

func (a *Adapter) SendText(ctx context.Context, userID int64, text string, af transport.Affordances) (transport.MessageRef, error) {
	msg, err := a.bot.Send(recipient(userID), text, sendOptions(af))
	if err != nil {
		return 0, err
	}

	return transport.MessageRef(msg.ID), nil
}

func (a *Adapter) SendMedia(ctx context.Context, userID int64, imageRef, caption string, af transport.Affordances) (transport.MessageRef, error) {
	photo := &tele.Photo{File: tele.FromURL(imageRef), Caption: caption}
	msg, err := a.bot.Send(recipient(userID), photo, sendOptions(af))
	if err != nil {
		return 0, err
	}

	return transport.MessageRef(msg.ID), nil
}

func (a *Adapter) EditAffordances(ctx context.Context, userID int64, ref transport.MessageRef, af transport.Affordances) error {
	stored := storedMessage(userID, ref)
	m := markup(af)
	if m == nil {
		m = &tele.ReplyMarkup{}
	}

	_, err := a.bot.EditReplyMarkup(stored, m)
	return err
}

func (a *Adapter) DeleteMessage(ctx context.Context, userID int64, ref transport.MessageRef) error {
	return a.bot.Delete(storedMessage(userID, ref))
}

// Me returns the bot account username for startup logging.
func (a *Adapter) Me(ctx context.Context) string {
	if a.bot.Me == nil {
		slogctx.Debug(ctx, "Bot identity not resolved yet")
		return ""
	}

	return a.bot.Me.Username
}

func sendOptions(af transport.Affordances) *tele.SendOptions {
	return &tele.SendOptions{ReplyMarkup: markup(af)}
}

func recipient(userID int64) tele.Recipient {
	return &tele.User{ID: userID}
}

func storedMessage(userID int64, ref transport.MessageRef) tele.Editable {
	return &tele.StoredMessage{
		MessageID: strconv.Itoa(int(ref)),
		ChatID:    userID,
	}
}
