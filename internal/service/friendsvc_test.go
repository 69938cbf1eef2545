package service

import (
	"context"
	"errors"
	"testing"

	"AnimeTrackserver/internal/domain"
)

type stubFriendshipsStore struct {
	t *testing.T

	createRequestFunc  func(context.Context, string, string) (domain.FriendRequest, error)
	getRequestFunc     func(context.Context, string) (domain.FriendRequest, error)
	hasPendingFromFunc func(context.Context, string, string) (bool, error)
	areFriendsFunc     func(context.Context, string, string) (bool, error)
	acceptFunc         func(context.Context, string) (domain.FriendRequest, error)
	rejectFunc         func(context.Context, string) (domain.FriendRequest, error)
	listIncomingFunc   func(context.Context, string) ([]domain.FriendRequestView, error)
	listOutgoingFunc   func(context.Context, string) ([]domain.FriendRequestView, error)
	listFriendsFunc    func(context.Context, string) ([]domain.UserSummary, error)
}

func (s *stubFriendshipsStore) CreateRequest(ctx context.Context, fromID, toID string) (domain.FriendRequest, error) {
	if s.createRequestFunc != nil {
		return s.createRequestFunc(ctx, fromID, toID)
	}
	s.t.Fatalf("CreateRequest called unexpectedly")
	return domain.FriendRequest{}, errors.New("unexpected call")
}

func (s *stubFriendshipsStore) GetRequest(ctx context.Context, requestID string) (domain.FriendRequest, error) {
	if s.getRequestFunc != nil {
		return s.getRequestFunc(ctx, requestID)
	}
	s.t.Fatalf("GetRequest called unexpectedly")
	return domain.FriendRequest{}, errors.New("unexpected call")
}

func (s *stubFriendshipsStore) HasPendingFrom(ctx context.Context, fromID, toID string) (bool, error) {
	if s.hasPendingFromFunc != nil {
		return s.hasPendingFromFunc(ctx, fromID, toID)
	}
	s.t.Fatalf("HasPendingFrom called unexpectedly")
	return false, errors.New("unexpected call")
}

func (s *stubFriendshipsStore) AreFriends(ctx context.Context, userID, otherID string) (bool, error) {
	if s.areFriendsFunc != nil {
		return s.areFriendsFunc(ctx, userID, otherID)
	}
	s.t.Fatalf("AreFriends called unexpectedly")
	return false, errors.New("unexpected call")
}

func (s *stubFriendshipsStore) Accept(ctx context.Context, requestID string) (domain.FriendRequest, error) {
	if s.acceptFunc != nil {
		return s.acceptFunc(ctx, requestID)
	}
	s.t.Fatalf("Accept called unexpectedly")
	return domain.FriendRequest{}, errors.New("unexpected call")
}

func (s *stubFriendshipsStore) Reject(ctx context.Context, requestID string) (domain.FriendRequest, error) {
	if s.rejectFunc != nil {
		return s.rejectFunc(ctx, requestID)
	}
	s.t.Fatalf("Reject called unexpectedly")
	return domain.FriendRequest{}, errors.New("unexpected call")
}

func (s *stubFriendshipsStore) ListIncoming(ctx context.Context, userID string) ([]domain.FriendRequestView, error) {
	if s.listIncomingFunc != nil {
		return s.listIncomingFunc(ctx, userID)
	}
	s.t.Fatalf("ListIncoming called unexpectedly")
	return nil, errors.New("unexpected call")
}

func (s *stubFriendshipsStore) ListOutgoing(ctx context.Context, userID string) ([]domain.FriendRequestView, error) {
	if s.listOutgoingFunc != nil {
		return s.listOutgoingFunc(ctx, userID)
	}
	s.t.Fatalf("ListOutgoing called unexpectedly")
	return nil, errors.New("unexpected call")
}

func (s *stubFriendshipsStore) ListFriends(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	if s.listFriendsFunc != nil {
		return s.listFriendsFunc(ctx, userID)
	}
	s.t.Fatalf("ListFriends called unexpectedly")
	return nil, errors.New("unexpected call")
}

type stubUserGetter struct {
	getUserByIDFunc func(context.Context, string) (domain.User, error)
}

func (s *stubUserGetter) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if s.getUserByIDFunc != nil {
		return s.getUserByIDFunc(ctx, id)
	}
	return domain.User{ID: id}, nil
}

func TestFriendsServiceCreateRequest(t *testing.T) {
	friendships := &stubFriendshipsStore{
		t: t,
		hasPendingFromFunc: func(_ context.Context, _, _ string) (bool, error) {
			return false, nil
		},
		areFriendsFunc: func(_ context.Context, _, _ string) (bool, error) {
			return false, nil
		},
		createRequestFunc: func(_ context.Context, fromID, toID string) (domain.FriendRequest, error) {
			if fromID != "user-1" || toID != "user-2" {
				t.Fatalf("unexpected request pair: %s -> %s", fromID, toID)
			}
			return domain.FriendRequest{ID: "req-1", FromID: fromID, ToID: toID, Status: domain.RequestStatusPending}, nil
		},
	}
	svc := &FriendsService{Users: &stubUserGetter{}, Friendships: friendships}

	req, err := svc.CreateRequest(context.Background(), "user-1", "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.ID != "req-1" || req.Status != domain.RequestStatusPending {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestFriendsServiceCreateRequestToSelf(t *testing.T) {
	svc := &FriendsService{Users: &stubUserGetter{}, Friendships: &stubFriendshipsStore{t: t}}

	_, err := svc.CreateRequest(context.Background(), "user-1", "user-1")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFriendsServiceCreateRequestUnknownTarget(t *testing.T) {
	users := &stubUserGetter{
		getUserByIDFunc: func(_ context.Context, _ string) (domain.User, error) {
			return domain.User{}, domain.ErrNotFound
		},
	}
	svc := &FriendsService{Users: users, Friendships: &stubFriendshipsStore{t: t}}

	_, err := svc.CreateRequest(context.Background(), "user-1", "ghost")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFriendsServiceCreateRequestAlreadySent(t *testing.T) {
	friendships := &stubFriendshipsStore{
		t: t,
		hasPendingFromFunc: func(_ context.Context, fromID, toID string) (bool, error) {
			return fromID == "user-1" && toID == "user-2", nil
		},
	}
	svc := &FriendsService{Users: &stubUserGetter{}, Friendships: friendships}

	_, err := svc.CreateRequest(context.Background(), "user-1", "user-2")
	if !errors.Is(err, domain.ErrRequestSent) {
		t.Fatalf("expected request sent, got %v", err)
	}
}

func TestFriendsServiceCreateRequestAlreadyReceived(t *testing.T) {
	friendships := &stubFriendshipsStore{
		t: t,
		hasPendingFromFunc: func(_ context.Context, fromID, toID string) (bool, error) {
			return fromID == "user-2" && toID == "user-1", nil
		},
	}
	svc := &FriendsService{Users: &stubUserGetter{}, Friendships: friendships}

	_, err := svc.CreateRequest(context.Background(), "user-1", "user-2")
	if !errors.Is(err, domain.ErrRequestReceived) {
		t.Fatalf("expected request received, got %v", err)
	}
}

func TestFriendsServiceCreateRequestAlreadyFriends(t *testing.T) {
	friendships := &stubFriendshipsStore{
		t: t,
		hasPendingFromFunc: func(_ context.Context, _, _ string) (bool, error) {
			return false, nil
		},
		areFriendsFunc: func(_ context.Context, _, _ string) (bool, error) {
			return true, nil
		},
	}
	svc := &FriendsService{Users: &stubUserGetter{}, Friendships: friendships}

	_, err := svc.CreateRequest(context.Background(), "user-1", "user-2")
	if !errors.Is(err, domain.ErrAlreadyFriends) {
		t.Fatalf("expected already friends, got %v", err)
	}
}

func TestFriendsServiceAccept(t *testing.T) {
	friendships := &stubFriendshipsStore{
		t: t,
		getRequestFunc: func(_ context.Context, requestID string) (domain.FriendRequest, error) {
			return domain.FriendRequest{ID: requestID, FromID: "user-1", ToID: "user-2", Status: domain.RequestStatusPending}, nil
		},
		acceptFunc: func(_ context.Context, requestID string) (domain.FriendRequest, error) {
			return domain.FriendRequest{ID: requestID, FromID: "user-1", ToID: "user-2", Status: domain.RequestStatusAccepted}, nil
		},
	}
	svc := &FriendsService{Users: &stubUserGetter{}, Friendships: friendships}

	req, err := svc.Accept(context.Background(), "user-2", "req-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != domain.RequestStatusAccepted {
		t.Fatalf("unexpected status: %s", req.Status)
	}
}

func TestFriendsServiceAcceptNotAddressee(t *testing.T) {
	friendships := &stubFriendshipsStore{
		t: t,
		getRequestFunc: func(_ context.Context, requestID string) (domain.FriendRequest, error) {
			return domain.FriendRequest{ID: requestID, FromID: "user-1", ToID: "user-2", Status: domain.RequestStatusPending}, nil
		},
	}
	svc := &FriendsService{Users: &stubUserGetter{}, Friendships: friendships}

	_, err := svc.Accept(context.Background(), "user-3", "req-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestFriendsServiceRejectResolvedRequest(t *testing.T) {
	friendships := &stubFriendshipsStore{
		t: t,
		getRequestFunc: func(_ context.Context, requestID string) (domain.FriendRequest, error) {
			return domain.FriendRequest{ID: requestID, FromID: "user-1", ToID: "user-2", Status: domain.RequestStatusAccepted}, nil
		},
		rejectFunc: func(_ context.Context, _ string) (domain.FriendRequest, error) {
			return domain.FriendRequest{}, domain.ErrNotFound
		},
	}
	svc := &FriendsService{Users: &stubUserGetter{}, Friendships: friendships}

	_, err := svc.Reject(context.Background(), "user-2", "req-1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for resolved request, got %v", err)
	}
}
