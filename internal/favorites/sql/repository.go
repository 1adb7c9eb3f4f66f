package favoritessql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinegram/cinegram/internal/favorites"
	"github.com/cinegram/cinegram/internal/serviceerr"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		db: db,
	}
}

var _ = favorites.Repository(&Repository{})

func (r *Repository) UpsertUser(ctx context.Context, user favorites.User) error {
	if _, err := r.db.Exec(
		ctx, `INSERT INTO users (id, username, first_name, last_name)
VALUES ($1, $2, $3, $4)
	ON CONFLICT (id)
	DO UPDATE SET (username, first_name, last_name, updated_at) =
		(EXCLUDED.username, EXCLUDED.first_name, EXCLUDED.last_name, now());`,
		user.ID, user.Username, user.FirstName, user.LastName,
	); err != nil {
		return fmt.Errorf("upserting into users: %w", err)
	}

	return nil
}

func (r *Repository) CountFavorites(ctx context.Context, userID int64) (count int, _ error) {
	if err := r.db.QueryRow(
		ctx, `SELECT count(*) FROM favorite_movies WHERE user_id = $1;`, userID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting favorite_movies: %w", err)
	}

	return count, nil
}

func (r *Repository) InsertFavorite(ctx context.Context, entry favorites.Entry) error {
	if _, err := r.db.Exec(
		ctx, `INSERT INTO favorite_movies (user_id, movie_id, title, release_year, genres, country)
VALUES ($1, $2, $3, $4, $5, $6);`,
		entry.UserID, entry.MovieID, entry.Title, entry.ReleaseYear, entry.Genres, entry.Country,
	); err != nil {
		if err, ok := handlePgError(err); ok {
			return err
		}

		return fmt.Errorf("inserting into favorite_movies: %w", err)
	}

	return nil
}

func (r *Repository) ListFavorites(ctx context.Context, userID int64) ([]favorites.Entry, error) {
	rows, err := r.db.Query(
		ctx, `SELECT id, user_id, movie_id, title, release_year, genres, country, created_at
FROM favorite_movies
WHERE user_id = $1
ORDER BY created_at, id;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("selecting from favorite_movies: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (favorites.Entry, error) {
		var e favorites.Entry
		err := row.Scan(&e.ID, &e.UserID, &e.MovieID, &e.Title, &e.ReleaseYear, &e.Genres, &e.Country, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning favorite_movies rows: %w", err)
	}

	return entries, nil
}

func (r *Repository) DeleteFavoriteByID(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM favorite_movies WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("deleting from favorite_movies: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return serviceerr.ErrNotFound
	}

	return nil
}

func (r *Repository) DeleteAllFavorites(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM favorite_movies WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("deleting all favorite_movies: %w", err)
	}

	return nil
}

// GetUser is used by tests and the migrate smoke check.
func (r *Repository) GetUser(ctx context.Context, userID int64) (user favorites.User, _ error) {
	if err := r.db.QueryRow(
		ctx, `SELECT id, username, first_name, last_name FROM users WHERE id = $1;`, userID,
	).Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return favorites.User{}, serviceerr.ErrNotFound
		}

		return favorites.User{}, fmt.Errorf("selecting from users: %w", err)
	}

	return user, nil
}
