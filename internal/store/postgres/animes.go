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

type AnimesStore struct {
	pool *pgxpool.Pool
}

func NewAnimesStore(pool *pgxpool.Pool) *AnimesStore {
	return &AnimesStore{pool: pool}
}

func (s *AnimesStore) ListAnimes(ctx context.Context) ([]domain.Anime, error) {
	const q = `
		SELECT id, title, genres, description, image, added
		FROM animes
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list animes: %w", err)
	}
	defer rows.Close()

	out := []domain.Anime{}
	for rows.Next() {
		a, err := scanAnime(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list animes: %w", err)
	}
	return out, nil
}

func (s *AnimesStore) GetAnime(ctx context.Context, id int64) (domain.Anime, error) {
	const q = `
		SELECT id, title, genres, description, image, added
		FROM animes
		WHERE id = $1
	`

	a, err := scanAnime(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Anime{}, domain.ErrNotFound
		}
		return domain.Anime{}, fmt.Errorf("get anime: %w", err)
	}
	return a, nil
}

func (s *AnimesStore) CreateAnime(ctx context.Context, a domain.Anime) (domain.Anime, error) {
	const q = `
		INSERT INTO animes (id, title, genres, description, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, genres, description, image, added
	`

	created, err := scanAnime(s.pool.QueryRow(ctx, q, a.ID, a.Title, a.Genres, a.Description, a.Image))
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return domain.Anime{}, domain.ErrAnimeIDTaken
		}
		return domain.Anime{}, fmt.Errorf("create anime: %w", err)
	}
	return created, nil
}

func (s *AnimesStore) UpdateAnime(ctx context.Context, a domain.Anime) (domain.Anime, error) {
	const q = `
		UPDATE animes
		SET title = $2, genres = $3, description = $4, image = $5
		WHERE id = $1
		RETURNING id, title, genres, description, image, added
	`

	updated, err := scanAnime(s.pool.QueryRow(ctx, q, a.ID, a.Title, a.Genres, a.Description, a.Image))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Anime{}, domain.ErrNotFound
		}
		return domain.Anime{}, fmt.Errorf("update anime: %w", err)
	}
	return updated, nil
}

func (s *AnimesStore) DeleteAnime(ctx context.Context, id int64) error {
	const q = `DELETE FROM animes WHERE id = $1`

	ct, err := s.pool.Exec(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete anime: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanAnime(row pgx.Row) (domain.Anime, error) {
	var (
		a      domain.Anime
		genres pgtype.FlatArray[string]
	)
	if err := row.Scan(&a.ID, &a.Title, &genres, &a.Description, &a.Image, &a.Added); err != nil {
		return domain.Anime{}, err
	}
	a.Genres = textArrayOrEmpty(genres)
	return a, nil
}
