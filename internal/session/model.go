package session

import (
	"github.com/cinegram/cinegram/internal/catalog"
	"github.com/cinegram/cinegram/internal/favorites"
	"github.com/cinegram/cinegram/internal/transport"
)

// State is the conversation position of one user.
type State int

const (
	// StateIdle accepts any top-level command.
	StateIdle State = iota
	// StateAwaitingQuery waits for free search text.
	StateAwaitingQuery
	// StateAwaitingLimit waits for a result-count selection.
	StateAwaitingLimit
	// StateResultsPresented holds a rendered result set; per-item actions
	// and new top-level commands are both accepted.
	StateResultsPresented
	// StateAwaitingDeletion waits for favorite position numbers.
	StateAwaitingDeletion
)

func (s State) String() string {
	switch s {
	case StateAwaitingQuery:
		return "awaiting_query"
	case StateAwaitingLimit:
		return "awaiting_limit"
	case StateResultsPresented:
		return "results_presented"
	case StateAwaitingDeletion:
		return "awaiting_deletion"
	default:
		return "idle"
	}
}

// Session is the ephemeral conversation state of one user. Scratch fields
// are only meaningful for the state that produced them; transitions that do
// not need a field must not read it.
type Session struct {
	UserID int64 `json:"userId"`
	State  State `json:"state"`

	Kind         catalog.Kind         `json:"kind"`
	Query        string               `json:"query,omitempty"`
	Movies       []catalog.Movie      `json:"movies,omitempty"`
	Persons      []catalog.Person     `json:"persons,omitempty"`
	PersonDetail *catalog.Person      `json:"personDetail,omitempty"`
	Favorites    []favorites.Entry    `json:"favorites,omitempty"`
	PromptRef    transport.MessageRef `json:"promptRef,omitempty"`
}

// ClearScratch resets the session to Idle, keeping only the identity.
func (s *Session) ClearScratch() {
	*s = Session{UserID: s.UserID}
}
