// Package sessionvalkey backs the session store with Valkey so several bot
// instances can share conversation state. Locks stay process-local: the
// transport delivers one event at a time per process, so cross-instance
// mutual exclusion is not needed.
package sessionvalkey

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/cinegram/cinegram/internal/session"
)

type Store struct {
	valkey  valkey.Client
	prefix  string
	idleTTL time.Duration
	locks   *session.LockTable
}

var _ = session.Store(&Store{})

func NewStore(valkeyClient valkey.Client, prefix string, idleTTL time.Duration) *Store {
	prefix = strings.TrimSuffix(prefix, ":")
	if idleTTL <= 0 {
		idleTTL = session.DefaultIdleTTL
	}
	return &Store{
		valkey:  valkeyClient,
		prefix:  prefix,
		idleTTL: idleTTL,
		locks:   session.NewLockTable(),
	}
}

func (s *Store) Lock(userID int64) func() {
	return s.locks.Lock(userID)
}

func (s *Store) Load(ctx context.Context, userID int64) (session.Session, error) {
	bytes, err := s.valkey.Do(ctx, s.valkey.B().Get().Key(s.key(userID)).Build()).AsBytes()
	if err != nil {
		valkeyErr, ok := valkey.IsValkeyErr(err)
		if ok && valkeyErr.IsNil() {
			return session.Session{UserID: userID}, nil
		}

		return session.Session{}, fmt.Errorf("executing get command: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(bytes, &sess); err != nil {
		return session.Session{}, fmt.Errorf("unmarshaling session: %w", err)
	}

	return sess, nil
}

func (s *Store) Save(ctx context.Context, sess session.Session) error {
	bytes, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	cmd := s.valkey.B().Set().Key(s.key(sess.UserID)).Value(valkey.BinaryString(bytes)).
		Ex(s.idleTTL).Build()
	if err := s.valkey.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("executing set command: %w", err)
	}

	return nil
}

func (s *Store) Clear(ctx context.Context, userID int64) error {
	if err := s.valkey.Do(ctx, s.valkey.B().Del().Key(s.key(userID)).Build()).Error(); err != nil {
		return fmt.Errorf("executing del command: %w", err)
	}

	return nil
}

func (s *Store) key(userID int64) string {
	return fmt.Sprintf("%s:session:%s", s.prefix, strconv.FormatInt(userID, 10))
}
