package service

import (
	"context"
	"errors"

	"AnimeTrackserver/internal/domain"
)

type WatchListsStore interface {
	AddEntry(ctx context.Context, userID string, e domain.WatchEntry) error
	UpdateEntry(ctx context.Context, userID string, animeID int64, upd domain.WatchEntryUpdate) error
	ToggleFavorite(ctx context.Context, userID string, animeID int64) (bool, error)
	RemoveEntry(ctx context.Context, userID string, animeID int64) error
	ListItems(ctx context.Context, userID string) ([]domain.WatchItem, error)
}

type AnimeGetter interface {
	GetAnime(ctx context.Context, id int64) (domain.Anime, error)
}

type WatchListService struct {
	Animes     AnimeGetter
	WatchLists WatchListsStore
}

type AddEntryParams struct {
	AnimeID int64
	Status  *domain.WatchStatus
	Rating  *float64
	Notes   string
}

// Add appends a new entry and returns the refreshed list. The anime must
// exist in the catalog, and a second entry for the same anime is rejected.
func (s *WatchListService) Add(ctx context.Context, userID string, p AddEntryParams) ([]domain.WatchItem, error) {
	if p.AnimeID <= 0 {
		return nil, domain.NewValidationError(map[string]string{"animeId": "required"})
	}

	entry := domain.WatchEntry{
		AnimeID: p.AnimeID,
		Status:  domain.WatchStatusPlan,
		Notes:   p.Notes,
	}
	if p.Status != nil {
		if !domain.ValidWatchStatus(*p.Status) {
			return nil, domain.NewValidationError(map[string]string{"status": "unknown status"})
		}
		entry.Status = *p.Status
	}
	if p.Rating != nil {
		if err := validateRating(*p.Rating); err != nil {
			return nil, err
		}
		entry.Rating = p.Rating
	}

	if _, err := s.Animes.GetAnime(ctx, p.AnimeID); err != nil {
		return nil, err
	}

	if err := s.WatchLists.AddEntry(ctx, userID, entry); err != nil {
		return nil, err
	}

	return s.WatchLists.ListItems(ctx, userID)
}

func (s *WatchListService) Update(ctx context.Context, userID string, animeID int64, upd domain.WatchEntryUpdate) ([]domain.WatchItem, error) {
	if upd.Status != nil && !domain.ValidWatchStatus(*upd.Status) {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown status"})
	}
	if upd.Rating != nil {
		if err := validateRating(*upd.Rating); err != nil {
			return nil, err
		}
	}

	if err := s.WatchLists.UpdateEntry(ctx, userID, animeID, upd); err != nil {
		return nil, err
	}

	return s.WatchLists.ListItems(ctx, userID)
}

func (s *WatchListService) ToggleFavorite(ctx context.Context, userID string, animeID int64) (bool, error) {
	return s.WatchLists.ToggleFavorite(ctx, userID, animeID)
}

func (s *WatchListService) Remove(ctx context.Context, userID string, animeID int64) ([]domain.WatchItem, error) {
	if err := s.WatchLists.RemoveEntry(ctx, userID, animeID); err != nil {
		return nil, err
	}
	return s.WatchLists.ListItems(ctx, userID)
}

// List returns the caller's watch-list joined with catalog metadata. Entries
// referencing animes that have since left the catalog are absent from the
// result; the stale entries themselves are left in place.
func (s *WatchListService) List(ctx context.Context, userID string) ([]domain.WatchItem, error) {
	items, err := s.WatchLists.ListItems(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.WatchItem{}, nil
		}
		return nil, err
	}
	return items, nil
}

func validateRating(r float64) error {
	if r < 0 || r > 10 {
		return domain.NewValidationError(map[string]string{"rating": "must be between 0 and 10"})
	}
	return nil
}
