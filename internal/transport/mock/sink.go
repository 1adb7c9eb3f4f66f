// Package transportmock records outbound messages for tests.
package transportmock

import (
	"context"
	"sync"

	"github.com/cinegram/cinegram/internal/transport"
)

type SinkOption func(*Sink)

func WithSendTextError(err error) SinkOption {
	return func(s *Sink) { s.sendTextErr = err }
}
func WithSendMediaError(err error) SinkOption {
	return func(s *Sink) { s.sendMediaErr = err }
}

// Sent is one recorded outbound message.
type Sent struct {
	UserID      int64
	Text        string
	ImageRef    string
	Ref         transport.MessageRef
	Affordances transport.Affordances
}

type Sink struct {
	mu      sync.Mutex
	nextRef transport.MessageRef
	sent    []Sent
	edited  map[transport.MessageRef]transport.Affordances
	deleted []transport.MessageRef

	sendTextErr, sendMediaErr error
}

var _ = transport.Sink(&Sink{})

func NewSink(opts ...SinkOption) *Sink {
	s := &Sink{
		nextRef: 100,
		edited:  make(map[transport.MessageRef]transport.Affordances),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Sink) SendText(_ context.Context, userID int64, text string, a transport.Affordances) (transport.MessageRef, error) {
	if s.sendTextErr != nil {
		return 0, s.sendTextErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRef++
	s.sent = append(s.sent, Sent{UserID: userID, Text: text, Ref: s.nextRef, Affordances: a})
	return s.nextRef, nil
}

func (s *Sink) SendMedia(_ context.Context, userID int64, imageRef, caption string, a transport.Affordances) (transport.MessageRef, error) {
	if s.sendMediaErr != nil {
		return 0, s.sendMediaErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRef++
	s.sent = append(s.sent, Sent{UserID: userID, Text: caption, ImageRef: imageRef, Ref: s.nextRef, Affordances: a})
	return s.nextRef, nil
}

func (s *Sink) EditAffordances(_ context.Context, _ int64, ref transport.MessageRef, a transport.Affordances) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edited[ref] = a
	return nil
}

func (s *Sink) DeleteMessage(_ context.Context, _ int64, ref transport.MessageRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, ref)
	return nil
}

// Sent returns the recorded messages in send order.
func (s *Sink) SentMessages() []Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Sent, len(s.sent))
	copy(out, s.sent)
	return out
}

// LastSent returns the most recent message, or a zero Sent.
func (s *Sink) LastSent() Sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return Sent{}
	}
	return s.sent[len(s.sent)-1]
}

// Edited returns the affordances last written to ref.
func (s *Sink) Edited(ref transport.MessageRef) (transport.Affordances, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.edited[ref]
	return a, ok
}

// Deleted returns the refs deletion was requested for.
func (s *Sink) Deleted() []transport.MessageRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]transport.MessageRef, len(s.deleted))
	copy(out, s.deleted)
	return out
}
