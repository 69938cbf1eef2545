package service

import (
	"context"
	"strings"

	"AnimeTrackserver/internal/domain"
)

type UserSearcher interface {
	SearchUsers(ctx context.Context, q string, limit int, excludeUserID string) ([]domain.UserSummary, error)
}

type UserService struct {
	Users UserSearcher
}

// Search finds accounts by username or email fragment. The caller and their
// existing friends never appear in the results.
func (s *UserService) Search(ctx context.Context, callerID, q string, limit int) ([]domain.UserSummary, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, domain.NewValidationError(map[string]string{"q": "required"})
	}
	return s.Users.SearchUsers(ctx, q, limit, callerID)
}
