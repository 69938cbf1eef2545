package service

import (
	"context"
	"errors"
	"strings"

	"AnimeTrackserver/internal/auth"
	"AnimeTrackserver/internal/domain"
)

type UsersStore interface {
	CreateUser(ctx context.Context, email, username, passwordHash string) (domain.User, error)
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.UserWithPassword, error)
}

type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

type AuthService struct {
	Users  UsersStore
	Tokens TokenIssuer
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, "", err
	}

	u, err := s.Users.CreateUser(ctx, email, username, passwordHash)
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return domain.User{}, "", err
	}

	return u, token, nil
}

// Login resolves the account by email. An unknown email surfaces as not-found;
// a known email with the wrong password is an invalid-credentials error.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", domain.ErrNotFound
		}
		return domain.User{}, "", err
	}

	ok, err := auth.VerifyPassword(u.PasswordHash, password)
	if err != nil {
		return domain.User{}, "", err
	}
	if !ok {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(u.ID, u.Email)
	if err != nil {
		return domain.User{}, "", err
	}

	return u.User, token, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return s.Users.GetUserByID(ctx, userID)
}
