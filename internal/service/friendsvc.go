package service

import (
	"context"
	"strings"

	"AnimeTrackserver/internal/domain"
)

type FriendshipsStore interface {
	CreateRequest(ctx context.Context, fromID, toID string) (domain.FriendRequest, error)
	GetRequest(ctx context.Context, requestID string) (domain.FriendRequest, error)
	HasPendingFrom(ctx context.Context, fromID, toID string) (bool, error)
	AreFriends(ctx context.Context, userID, otherID string) (bool, error)
	Accept(ctx context.Context, requestID string) (domain.FriendRequest, error)
	Reject(ctx context.Context, requestID string) (domain.FriendRequest, error)
	ListIncoming(ctx context.Context, userID string) ([]domain.FriendRequestView, error)
	ListOutgoing(ctx context.Context, userID string) ([]domain.FriendRequestView, error)
	ListFriends(ctx context.Context, userID string) ([]domain.UserSummary, error)
}

type UserGetter interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

type FriendsService struct {
	Users       UserGetter
	Friendships FriendshipsStore
}

// CreateRequest sends a pending request from the caller to the target user.
// Both directions are checked for an existing pending request so the two
// users cannot hold simultaneous invitations; the second caller is told which
// side already sent one.
func (s *FriendsService) CreateRequest(ctx context.Context, fromID, toID string) (domain.FriendRequest, error) {
	toID = strings.TrimSpace(toID)
	if toID == "" {
		return domain.FriendRequest{}, domain.NewValidationError(map[string]string{"toUserId": "required"})
	}
	if toID == fromID {
		return domain.FriendRequest{}, domain.NewValidationError(map[string]string{"toUserId": "cannot send a friend request to yourself"})
	}

	if _, err := s.Users.GetUserByID(ctx, toID); err != nil {
		return domain.FriendRequest{}, err
	}

	sent, err := s.Friendships.HasPendingFrom(ctx, fromID, toID)
	if err != nil {
		return domain.FriendRequest{}, err
	}
	if sent {
		return domain.FriendRequest{}, domain.ErrRequestSent
	}

	received, err := s.Friendships.HasPendingFrom(ctx, toID, fromID)
	if err != nil {
		return domain.FriendRequest{}, err
	}
	if received {
		return domain.FriendRequest{}, domain.ErrRequestReceived
	}

	friends, err := s.Friendships.AreFriends(ctx, fromID, toID)
	if err != nil {
		return domain.FriendRequest{}, err
	}
	if friends {
		return domain.FriendRequest{}, domain.ErrAlreadyFriends
	}

	return s.Friendships.CreateRequest(ctx, fromID, toID)
}

// Accept resolves a pending request addressed to the caller and materializes
// the mutual friendship. Only the addressee may accept; resolved requests are
// terminal.
func (s *FriendsService) Accept(ctx context.Context, callerID, requestID string) (domain.FriendRequest, error) {
	req, err := s.Friendships.GetRequest(ctx, requestID)
	if err != nil {
		return domain.FriendRequest{}, err
	}
	if req.ToID != callerID {
		return domain.FriendRequest{}, domain.ErrForbidden
	}

	return s.Friendships.Accept(ctx, req.ID)
}

func (s *FriendsService) Reject(ctx context.Context, callerID, requestID string) (domain.FriendRequest, error) {
	req, err := s.Friendships.GetRequest(ctx, requestID)
	if err != nil {
		return domain.FriendRequest{}, err
	}
	if req.ToID != callerID {
		return domain.FriendRequest{}, domain.ErrForbidden
	}

	return s.Friendships.Reject(ctx, req.ID)
}

func (s *FriendsService) ListFriends(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	return s.Friendships.ListFriends(ctx, userID)
}

func (s *FriendsService) ListIncoming(ctx context.Context, userID string) ([]domain.FriendRequestView, error) {
	return s.Friendships.ListIncoming(ctx, userID)
}

func (s *FriendsService) ListOutgoing(ctx context.Context, userID string) ([]domain.FriendRequestView, error) {
	return s.Friendships.ListOutgoing(ctx, userID)
}
