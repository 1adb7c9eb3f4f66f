// Package transport defines the narrow contracts between the conversation
// engine and the chat transport. The engine never talks to Telegram types
// directly; it emits messages through Sink and receives events the adapter
// has already mapped into engine terms.
package transport

import "context"

// MessageRef identifies a delivered message for editing or deletion.
type MessageRef int

// Affordances describes the selectable actions attached to an outbound
// message. The zero value renders no keyboard.
type Affordances struct {
	MainMenu        bool
	LimitChoices    []int
	AddToFavorites  int64 // catalog item id, 0 for none
	DetailView      int64 // catalog item id, 0 for none
	ShowFilmography bool
	DeleteFavorites bool
	ConfirmClear    bool
	BackToMenu      bool
}

// IsZero reports whether no affordance is set.
func (a Affordances) IsZero() bool {
	return !a.MainMenu && len(a.LimitChoices) == 0 && a.AddToFavorites == 0 &&
		a.DetailView == 0 && !a.ShowFilmography && !a.DeleteFavorites &&
		!a.ConfirmClear && !a.BackToMenu
}

// Sink delivers outbound messages to the transport.
type Sink interface {
	SendText(ctx context.Context, userID int64, text string, a Affordances) (MessageRef, error)
	SendMedia(ctx context.Context, userID int64, imageRef, caption string, a Affordances) (MessageRef, error)
	EditAffordances(ctx context.Context, userID int64, ref MessageRef, a Affordances) error
	DeleteMessage(ctx context.Context, userID int64, ref MessageRef) error
}
