package postgres

import (
	"context"
	"errors"
	"fmt"

	"AnimeTrackserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WatchListsStore struct {
	pool *pgxpool.Pool
}

func NewWatchListsStore(pool *pgxpool.Pool) *WatchListsStore {
	return &WatchListsStore{pool: pool}
}

func (s *WatchListsStore) AddEntry(ctx context.Context, userID string, e domain.WatchEntry) error {
	const q = `
		INSERT INTO watch_entries (user_id, anime_id, status, rating, favorite, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, q, userID, e.AnimeID, e.Status, e.Rating, e.Favorite, e.Notes)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return domain.ErrAlreadyInList
		}
		return fmt.Errorf("add watch entry: %w", err)
	}
	return nil
}

func (s *WatchListsStore) UpdateEntry(ctx context.Context, userID string, animeID int64, upd domain.WatchEntryUpdate) error {
	const q = `
		UPDATE watch_entries
		SET status = COALESCE($3, status),
		    rating = COALESCE($4, rating),
		    notes  = COALESCE($5, notes)
		WHERE user_id = $1 AND anime_id = $2
	`

	ct, err := s.pool.Exec(ctx, q, userID, animeID, upd.Status, upd.Rating, upd.Notes)
	if err != nil {
		return fmt.Errorf("update watch entry: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *WatchListsStore) ToggleFavorite(ctx context.Context, userID string, animeID int64) (bool, error) {
	const q = `
		UPDATE watch_entries
		SET favorite = NOT favorite
		WHERE user_id = $1 AND anime_id = $2
		RETURNING favorite
	`

	var favorite bool
	err := s.pool.QueryRow(ctx, q, userID, animeID).Scan(&favorite)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("toggle favorite: %w", err)
	}
	return favorite, nil
}

func (s *WatchListsStore) RemoveEntry(ctx context.Context, userID string, animeID int64) error {
	const q = `DELETE FROM watch_entries WHERE user_id = $1 AND anime_id = $2`

	ct, err := s.pool.Exec(ctx, q, userID, animeID)
	if err != nil {
		return fmt.Errorf("remove watch entry: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListItems returns the watch-list joined with catalog metadata. The inner
// join drops entries whose anime has been deleted from the catalog; the
// entries themselves stay in storage. COALESCE surfaces the legacy score
// column as rating without rewriting old rows.
func (s *WatchListsStore) ListItems(ctx context.Context, userID string) ([]domain.WatchItem, error) {
	const q = `
		SELECT w.anime_id, w.status, COALESCE(w.rating, w.score), w.favorite, w.notes, w.added_at,
		       a.title, a.image, a.genres, a.description
		FROM watch_entries w
		JOIN animes a ON a.id = w.anime_id
		WHERE w.user_id = $1
		ORDER BY w.added_at ASC
	`

	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list watch items: %w", err)
	}
	defer rows.Close()

	out := []domain.WatchItem{}
	for rows.Next() {
		var (
			item   domain.WatchItem
			rating pgtype.Float8
			genres pgtype.FlatArray[string]
		)
		err := rows.Scan(
			&item.AnimeID,
			&item.Status,
			&rating,
			&item.Favorite,
			&item.Notes,
			&item.AddedAt,
			&item.Title,
			&item.Image,
			&genres,
			&item.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("scan watch item: %w", err)
		}
		item.Rating = float8Ptr(rating)
		item.Genres = textArrayOrEmpty(genres)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list watch items: %w", err)
	}
	return out, nil
}
