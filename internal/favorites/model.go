package favorites

import "time"

// User mirrors the transport identity, upserted on every /start.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// Entry is one favorite movie of one user. ID is repository-assigned and is
// the only safe deletion key; the user-facing position index is derived from
// a point-in-time List snapshot.
type Entry struct {
	ID          int64
	UserID      int64
	MovieID     int64
	Title       string
	ReleaseYear int
	Genres      string
	Country     string
	CreatedAt   time.Time
}
