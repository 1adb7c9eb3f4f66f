package engine

import (
	"github.com/cinegram/cinegram/internal/favorites"
	"github.com/cinegram/cinegram/internal/transport"
)

// Command is a top-level chat command.
type Command string

const (
	CommandStart Command = "start"
	CommandHelp  Command = "help"
)

// Action enumerates every menu selection the transport can deliver. The
// dispatcher matches on it exhaustively; there is no string routing.
type Action int

const (
	ActionSearchMovies Action = iota
	ActionSearchPersons
	ActionViewFavorites
	ActionHelp
	ActionMainMenu
	ActionLimit
	ActionAddFavorite
	ActionPersonDetail
	ActionShowFilmography
	ActionDeleteFavorites
	ActionClearFavorites
	ActionCancelDeletion
)

// Selection is one pressed menu option. ItemID is set for per-item actions,
// Limit for result-count choices.
type Selection struct {
	Action Action
	ItemID int64
	Limit  int
}

// Payload discriminates the inbound event kinds.
type Payload interface {
	isPayload()
}

type CommandPayload struct {
	Name Command
}

type TextPayload struct {
	Value string
}

type SelectionPayload struct {
	Selection Selection
}

func (CommandPayload) isPayload()   {}
func (TextPayload) isPayload()      {}
func (SelectionPayload) isPayload() {}

// Event is one inbound transport event, already mapped into engine terms.
// Ref targets the message the event originated from; Profile carries the
// transport-supplied display fields, only populated on commands.
type Event struct {
	UserID  int64
	Ref     transport.MessageRef
	Profile favorites.User
	Payload Payload
}
