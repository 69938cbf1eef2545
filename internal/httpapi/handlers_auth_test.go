package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"AnimeTrackserver/internal/auth"
	"AnimeTrackserver/internal/domain"
	"AnimeTrackserver/internal/service"
)

type stubUsersStore struct {
	t *testing.T

	createUserFunc     func(context.Context, string, string, string) (domain.User, error)
	getUserByIDFunc    func(context.Context, string) (domain.User, error)
	getUserByEmailFunc func(context.Context, string) (domain.UserWithPassword, error)
}

func (s *stubUsersStore) CreateUser(ctx context.Context, email, username, passwordHash string) (domain.User, error) {
	if s.createUserFunc != nil {
		return s.createUserFunc(ctx, email, username, passwordHash)
	}
	s.t.Fatalf("CreateUser called unexpectedly")
	return domain.User{}, context.Canceled
}

func (s *stubUsersStore) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if s.getUserByIDFunc != nil {
		return s.getUserByIDFunc(ctx, id)
	}
	s.t.Fatalf("GetUserByID called unexpectedly")
	return domain.User{}, context.Canceled
}

func (s *stubUsersStore) GetUserByEmail(ctx context.Context, email string) (domain.UserWithPassword, error) {
	if s.getUserByEmailFunc != nil {
		return s.getUserByEmailFunc(ctx, email)
	}
	s.t.Fatalf("GetUserByEmail called unexpectedly")
	return domain.UserWithPassword{}, context.Canceled
}

func newTestAuthService(t *testing.T, users *stubUsersStore) *service.AuthService {
	t.Helper()
	return &service.AuthService{
		Users:  users,
		Tokens: auth.NewTokenCodec([]byte("test-secret-test-secret-test-sec"), 0),
	}
}

func TestAuthRegister(t *testing.T) {
	users := &stubUsersStore{
		t: t,
		createUserFunc: func(_ context.Context, email, username, _ string) (domain.User, error) {
			return domain.User{ID: "user-1", Email: email, Username: username}, nil
		},
	}
	a := &api{authSvc: newTestAuthService(t, users)}

	body := `{"username":"viewer","email":"viewer@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))

	rr := httptest.NewRecorder()
	a.handleAuthRegister(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d, body %s", rr.Code, rr.Body.String())
	}

	var got struct {
		User  domain.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.User.ID != "user-1" || got.Token == "" {
		t.Fatalf("unexpected response: %+v", got)
	}
}

func TestAuthRegisterShortPassword(t *testing.T) {
	a := &api{authSvc: newTestAuthService(t, &stubUsersStore{t: t})}

	body := `{"username":"viewer","email":"viewer@example.com","password":"abc"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))

	rr := httptest.NewRecorder()
	a.handleAuthRegister(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestAuthRegisterDuplicateUsername(t *testing.T) {
	users := &stubUsersStore{
		t: t,
		createUserFunc: func(_ context.Context, _, _, _ string) (domain.User, error) {
			return domain.User{}, domain.ErrUsernameTaken
		},
	}
	a := &api{authSvc: newTestAuthService(t, users)}

	body := `{"username":"viewer","email":"viewer@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))

	rr := httptest.NewRecorder()
	a.handleAuthRegister(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if code := decodeErrorCode(t, strings.NewReader(rr.Body.String())); code != "username_taken" {
		t.Fatalf("unexpected error code: %s", code)
	}
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	users := &stubUsersStore{
		t: t,
		getUserByEmailFunc: func(_ context.Context, _ string) (domain.UserWithPassword, error) {
			return domain.UserWithPassword{}, domain.ErrNotFound
		},
	}
	a := &api{authSvc: newTestAuthService(t, users)}

	body := `{"email":"nobody@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))

	rr := httptest.NewRecorder()
	a.handleAuthLogin(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("the-right-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	users := &stubUsersStore{
		t: t,
		getUserByEmailFunc: func(_ context.Context, email string) (domain.UserWithPassword, error) {
			return domain.UserWithPassword{
				User:         domain.User{ID: "user-1", Email: email},
				PasswordHash: hash,
			}, nil
		},
	}
	a := &api{authSvc: newTestAuthService(t, users)}

	body := `{"email":"viewer@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))

	rr := httptest.NewRecorder()
	a.handleAuthLogin(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if code := decodeErrorCode(t, strings.NewReader(rr.Body.String())); code != "invalid_credentials" {
		t.Fatalf("unexpected error code: %s", code)
	}
}

func TestRequireAuthBearerOptionalPrefix(t *testing.T) {
	codec := auth.NewTokenCodec([]byte("test-secret-test-secret-test-sec"), 0)
	token, err := codec.Issue("user-1", "viewer@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	a := &api{tokens: codec}
	handler := a.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := CurrentIdentity(r.Context())
		if !ok || ident.UserID != "user-1" {
			t.Fatalf("identity missing from context: %+v", ident)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	for _, header := range []string{token, "Bearer " + token} {
		req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
		req.Header.Set("Authorization", header)

		rr := httptest.NewRecorder()
		handler(rr, req)

		if rr.Code != http.StatusNoContent {
			t.Fatalf("unexpected status for header %q: %d", header, rr.Code)
		}
	}
}

func TestRequireAuthMissingToken(t *testing.T) {
	a := &api{tokens: auth.NewTokenCodec([]byte("test-secret-test-secret-test-sec"), 0)}
	handler := a.requireAuth(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler should not run without a token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestRequireAuthGarbageToken(t *testing.T) {
	a := &api{tokens: auth.NewTokenCodec([]byte("test-secret-test-secret-test-sec"), 0)}
	handler := a.requireAuth(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler should not run with a bad token")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}
