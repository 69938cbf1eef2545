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

type FriendshipsStore struct {
	pool *pgxpool.Pool
}

func NewFriendshipsStore(pool *pgxpool.Pool) *FriendshipsStore {
	return &FriendshipsStore{pool: pool}
}

func (s *FriendshipsStore) CreateRequest(ctx context.Context, fromID, toID string) (domain.FriendRequest, error) {
	const q = `
		INSERT INTO friend_requests (from_user_id, to_user_id)
		VALUES ($1, $2)
		RETURNING id, status, created_at
	`

	req := domain.FriendRequest{FromID: fromID, ToID: toID}
	var idUUID pgtype.UUID
	err := s.pool.QueryRow(ctx, q, fromID, toID).Scan(&idUUID, &req.Status, &req.CreatedAt)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" && pgerr.ConstraintName == "friend_requests_pending_uq" {
			return domain.FriendRequest{}, domain.ErrRequestSent
		}
		return domain.FriendRequest{}, fmt.Errorf("create friend request: %w", err)
	}

	req.ID = uuidOrEmpty(idUUID)
	return req, nil
}

func (s *FriendshipsStore) GetRequest(ctx context.Context, requestID string) (domain.FriendRequest, error) {
	const q = `
		SELECT id, from_user_id, to_user_id, status, created_at
		FROM friend_requests
		WHERE id = $1
	`

	var (
		req              domain.FriendRequest
		idUUID, from, to pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, requestID).Scan(&idUUID, &from, &to, &req.Status, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return domain.FriendRequest{}, domain.ErrNotFound
		}
		return domain.FriendRequest{}, fmt.Errorf("get friend request: %w", err)
	}

	req.ID = uuidOrEmpty(idUUID)
	req.FromID = uuidOrEmpty(from)
	req.ToID = uuidOrEmpty(to)
	return req, nil
}

// HasPendingFrom reports whether a pending request from fromID to toID exists.
func (s *FriendshipsStore) HasPendingFrom(ctx context.Context, fromID, toID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM friend_requests
			WHERE from_user_id = $1 AND to_user_id = $2 AND status = 'pending'
		)
	`

	var exists bool
	if err := s.pool.QueryRow(ctx, q, fromID, toID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check pending request: %w", err)
	}
	return exists, nil
}

func (s *FriendshipsStore) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM friends
			WHERE user_id = $1 AND friend_id = $2
		)
	`

	var exists bool
	if err := s.pool.QueryRow(ctx, q, userID, otherID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check friendship: %w", err)
	}
	return exists, nil
}

// Accept transitions a pending request to accepted and materializes the mutual
// friendship. All three writes run in one transaction: either the request is
// accepted and both users list each other, or nothing changed.
func (s *FriendshipsStore) Accept(ctx context.Context, requestID string) (domain.FriendRequest, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.FriendRequest{}, fmt.Errorf("begin accept: %w", err)
	}
	defer tx.Rollback(ctx)

	const transition = `
		UPDATE friend_requests
		SET status = 'accepted'
		WHERE id = $1 AND status = 'pending'
		RETURNING id, from_user_id, to_user_id, status, created_at
	`

	var (
		req              domain.FriendRequest
		idUUID, from, to pgtype.UUID
	)
	err = tx.QueryRow(ctx, transition, requestID).Scan(&idUUID, &from, &to, &req.Status, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FriendRequest{}, domain.ErrNotFound
		}
		return domain.FriendRequest{}, fmt.Errorf("accept friend request: %w", err)
	}
	req.ID = uuidOrEmpty(idUUID)
	req.FromID = uuidOrEmpty(from)
	req.ToID = uuidOrEmpty(to)

	const addFriend = `
		INSERT INTO friends (user_id, friend_id)
		VALUES ($1, $2), ($2, $1)
		ON CONFLICT DO NOTHING
	`
	if _, err := tx.Exec(ctx, addFriend, req.FromID, req.ToID); err != nil {
		return domain.FriendRequest{}, fmt.Errorf("add mutual friendship: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.FriendRequest{}, fmt.Errorf("commit accept: %w", err)
	}
	return req, nil
}

func (s *FriendshipsStore) Reject(ctx context.Context, requestID string) (domain.FriendRequest, error) {
	const q = `
		UPDATE friend_requests
		SET status = 'rejected'
		WHERE id = $1 AND status = 'pending'
		RETURNING id, from_user_id, to_user_id, status, created_at
	`

	var (
		req              domain.FriendRequest
		idUUID, from, to pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, requestID).Scan(&idUUID, &from, &to, &req.Status, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FriendRequest{}, domain.ErrNotFound
		}
		return domain.FriendRequest{}, fmt.Errorf("reject friend request: %w", err)
	}

	req.ID = uuidOrEmpty(idUUID)
	req.FromID = uuidOrEmpty(from)
	req.ToID = uuidOrEmpty(to)
	return req, nil
}

func (s *FriendshipsStore) ListIncoming(ctx context.Context, userID string) ([]domain.FriendRequestView, error) {
	const q = `
		SELECT r.id, r.created_at, u.id, u.username, u.email, u.avatar
		FROM friend_requests r
		JOIN users u ON u.id = r.from_user_id
		WHERE r.status = 'pending' AND r.to_user_id = $1
		ORDER BY r.created_at DESC
	`
	return s.listRequests(ctx, q, userID, "list incoming requests")
}

func (s *FriendshipsStore) ListOutgoing(ctx context.Context, userID string) ([]domain.FriendRequestView, error) {
	const q = `
		SELECT r.id, r.created_at, u.id, u.username, u.email, u.avatar
		FROM friend_requests r
		JOIN users u ON u.id = r.to_user_id
		WHERE r.status = 'pending' AND r.from_user_id = $1
		ORDER BY r.created_at DESC
	`
	return s.listRequests(ctx, q, userID, "list outgoing requests")
}

func (s *FriendshipsStore) listRequests(ctx context.Context, q, userID, op string) ([]domain.FriendRequestView, error) {
	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []domain.FriendRequestView{}
	for rows.Next() {
		var (
			view             domain.FriendRequestView
			reqUUID, usrUUID pgtype.UUID
		)
		err := rows.Scan(&reqUUID, &view.CreatedAt, &usrUUID, &view.User.Username, &view.User.Email, &view.User.Avatar)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		view.ID = uuidOrEmpty(reqUUID)
		view.User.ID = uuidOrEmpty(usrUUID)
		out = append(out, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (s *FriendshipsStore) ListFriends(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	const q = `
		SELECT u.id, u.username, u.email, u.avatar
		FROM friends f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY u.username ASC
	`

	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	defer rows.Close()

	out := []domain.UserSummary{}
	for rows.Next() {
		var idUUID pgtype.UUID
		var friend domain.UserSummary
		if err := rows.Scan(&idUUID, &friend.Username, &friend.Email, &friend.Avatar); err != nil {
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		friend.ID = uuidOrEmpty(idUUID)
		out = append(out, friend)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return out, nil
}
