package favorites

import "context"

type Repository interface {
	// User operations
	UpsertUser(ctx context.Context, user User) error
	// Favorite operations
	CountFavorites(ctx context.Context, userID int64) (int, error)
	InsertFavorite(ctx context.Context, entry Entry) error
	ListFavorites(ctx context.Context, userID int64) ([]Entry, error)
	DeleteFavoriteByID(ctx context.Context, id int64) error
	DeleteAllFavorites(ctx context.Context, userID int64) error
}
