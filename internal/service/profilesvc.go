package service

import (
	"context"
	"regexp"
	"strings"

	"AnimeTrackserver/internal/auth"
	"AnimeTrackserver/internal/domain"
)

type ProfileUsersStore interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	UpdateUser(ctx context.Context, id string, upd domain.UserUpdate) (domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type WatchItemsLister interface {
	ListItems(ctx context.Context, userID string) ([]domain.WatchItem, error)
}

type ProfileService struct {
	Users      ProfileUsersStore
	WatchLists WatchItemsLister
}

type ProfileUpdateParams struct {
	Username *string
	Email    *string
	Avatar   *string
	Password *string
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Get assembles the public profile view, the account joined with its
// watch-list.
func (s *ProfileService) Get(ctx context.Context, userID string) (domain.Profile, error) {
	u, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	items, err := s.WatchLists.ListItems(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	return domain.Profile{User: u, Animes: items}, nil
}

// Update applies any subset of profile fields. A new password is re-hashed
// before it reaches storage; untouched fields keep their stored values.
func (s *ProfileService) Update(ctx context.Context, userID string, p ProfileUpdateParams) (domain.User, error) {
	fields := map[string]string{}
	upd := domain.UserUpdate{Avatar: p.Avatar}

	if p.Username != nil {
		username := strings.TrimSpace(*p.Username)
		if username == "" {
			fields["username"] = "cannot be empty"
		}
		upd.Username = &username
	}
	if p.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*p.Email))
		if !emailPattern.MatchString(email) {
			fields["email"] = "must be a valid email address"
		}
		upd.Email = &email
	}
	if p.Password != nil && len(*p.Password) < 6 {
		fields["password"] = "must be at least 6 characters"
	}
	if len(fields) > 0 {
		return domain.User{}, domain.NewValidationError(fields)
	}

	if p.Password != nil {
		hash, err := auth.HashPassword(*p.Password)
		if err != nil {
			return domain.User{}, err
		}
		upd.PasswordHash = &hash
	}

	return s.Users.UpdateUser(ctx, userID, upd)
}

func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	return s.Users.DeleteUser(ctx, userID)
}
