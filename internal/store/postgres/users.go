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

type UsersStore struct {
	pool *pgxpool.Pool
}

func NewUsersStore(pool *pgxpool.Pool) *UsersStore {
	return &UsersStore{pool: pool}
}

func (s *UsersStore) CreateUser(ctx context.Context, email, username, passwordHash string) (domain.User, error) {
	const q = `
		INSERT INTO users (email, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, username, avatar, created_at, updated_at
	`

	var (
		u      domain.User
		idUUID pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, email, username, passwordHash).Scan(
		&idUUID,
		&u.Email,
		&u.Username,
		&u.Avatar,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapUserWriteError(err)
	}

	u.ID = uuidOrEmpty(idUUID)
	return u, nil
}

func (s *UsersStore) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	const q = `
		SELECT id, email, username, avatar, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var (
		u      domain.User
		idUUID pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, id).Scan(
		&idUUID,
		&u.Email,
		&u.Username,
		&u.Avatar,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, fmt.Errorf("get user by id: %w", err)
	}

	u.ID = uuidOrEmpty(idUUID)
	return u, nil
}

func (s *UsersStore) GetUserByEmail(ctx context.Context, email string) (domain.UserWithPassword, error) {
	const q = `
		SELECT id, email, username, password_hash, avatar, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)
		LIMIT 1
	`

	var (
		u      domain.UserWithPassword
		idUUID pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, email).Scan(
		&idUUID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.Avatar,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserWithPassword{}, domain.ErrNotFound
		}
		return domain.UserWithPassword{}, fmt.Errorf("get user by email: %w", err)
	}

	u.ID = uuidOrEmpty(idUUID)
	return u, nil
}

func (s *UsersStore) UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) (domain.User, error) {
	const q = `
		UPDATE users
		SET username      = COALESCE($2, username),
		    email         = COALESCE($3, email),
		    avatar        = COALESCE($4, avatar),
		    password_hash = COALESCE($5, password_hash),
		    updated_at    = now()
		WHERE id = $1
		RETURNING id, email, username, avatar, created_at, updated_at
	`

	var (
		u      domain.User
		idUUID pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, id, upd.Username, upd.Email, upd.Avatar, upd.PasswordHash).Scan(
		&idUUID,
		&u.Email,
		&u.Username,
		&u.Avatar,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, mapUserWriteError(err)
	}

	u.ID = uuidOrEmpty(idUUID)
	return u, nil
}

// DeleteUser removes the account. Friendships, pending requests, and the
// watch-list go with it in the same statement via FK cascade, so the whole
// cleanup is atomic.
func (s *UsersStore) DeleteUser(ctx context.Context, id string) error {
	const q = `DELETE FROM users WHERE id = $1`

	ct, err := s.pool.Exec(ctx, q, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SearchUsers matches username or email case-insensitively, excluding the
// caller and anyone already in the caller's friends set.
func (s *UsersStore) SearchUsers(ctx context.Context, q string, limit int, excludeUserID string) ([]domain.UserSummary, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	like := "%" + q + "%"
	const query = `
		SELECT id, username, avatar
		FROM users u
		WHERE u.id <> $3
		  AND (u.username ILIKE $1 OR u.email ILIKE $1)
		  AND NOT EXISTS (
			SELECT 1 FROM friends f
			WHERE f.user_id = $3 AND f.friend_id = u.id
		  )
		ORDER BY u.username ASC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, like, limit, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	out := []domain.UserSummary{}
	for rows.Next() {
		var idUUID pgtype.UUID
		var username, avatar string
		if err := rows.Scan(&idUUID, &username, &avatar); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, domain.UserSummary{ID: uuidOrEmpty(idUUID), Username: username, Avatar: avatar})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	return out, nil
}

func mapUserWriteError(err error) error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		switch pgerr.ConstraintName {
		case "users_username_uq":
			return domain.ErrUsernameTaken
		case "users_email_uq":
			return domain.ErrEmailTaken
		default:
			return fmt.Errorf("unique violation (%s): %w", pgerr.ConstraintName, err)
		}
	}
	return fmt.Errorf("write user: %w", err)
}

// isInvalidUUID reports whether err is Postgres complaining about a malformed
// uuid literal. Path parameters flow straight into id lookups, so a garbage id
// reads as "no such row" rather than a server error.
func isInvalidUUID(err error) bool {
	var pgerr *pgconn.PgError
	return errors.As(err, &pgerr) && pgerr.Code == "22P02"
}
