package service

import (
	"context"
	"errors"
	"testing"

	"AnimeTrackserver/internal/domain"
)

type stubWatchListsStore struct {
	t *testing.T

	addEntryFunc       func(context.Context, string, domain.WatchEntry) error
	updateEntryFunc    func(context.Context, string, int64, domain.WatchEntryUpdate) error
	toggleFavoriteFunc func(context.Context, string, int64) (bool, error)
	removeEntryFunc    func(context.Context, string, int64) error
	listItemsFunc      func(context.Context, string) ([]domain.WatchItem, error)
}

func (s *stubWatchListsStore) AddEntry(ctx context.Context, userID string, e domain.WatchEntry) error {
	if s.addEntryFunc != nil {
		return s.addEntryFunc(ctx, userID, e)
	}
	s.t.Fatalf("AddEntry called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubWatchListsStore) UpdateEntry(ctx context.Context, userID string, animeID int64, upd domain.WatchEntryUpdate) error {
	if s.updateEntryFunc != nil {
		return s.updateEntryFunc(ctx, userID, animeID, upd)
	}
	s.t.Fatalf("UpdateEntry called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubWatchListsStore) ToggleFavorite(ctx context.Context, userID string, animeID int64) (bool, error) {
	if s.toggleFavoriteFunc != nil {
		return s.toggleFavoriteFunc(ctx, userID, animeID)
	}
	s.t.Fatalf("ToggleFavorite called unexpectedly")
	return false, errors.New("unexpected call")
}

func (s *stubWatchListsStore) RemoveEntry(ctx context.Context, userID string, animeID int64) error {
	if s.removeEntryFunc != nil {
		return s.removeEntryFunc(ctx, userID, animeID)
	}
	s.t.Fatalf("RemoveEntry called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubWatchListsStore) ListItems(ctx context.Context, userID string) ([]domain.WatchItem, error) {
	if s.listItemsFunc != nil {
		return s.listItemsFunc(ctx, userID)
	}
	s.t.Fatalf("ListItems called unexpectedly")
	return nil, errors.New("unexpected call")
}

type stubAnimeGetter struct {
	getAnimeFunc func(context.Context, int64) (domain.Anime, error)
}

func (s *stubAnimeGetter) GetAnime(ctx context.Context, id int64) (domain.Anime, error) {
	if s.getAnimeFunc != nil {
		return s.getAnimeFunc(ctx, id)
	}
	return domain.Anime{ID: id, Title: "stub"}, nil
}

func TestWatchListServiceAddDefaults(t *testing.T) {
	store := &stubWatchListsStore{
		t: t,
		addEntryFunc: func(_ context.Context, userID string, e domain.WatchEntry) error {
			if userID != "user-1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			if e.Status != domain.WatchStatusPlan {
				t.Fatalf("expected default status plan, got %s", e.Status)
			}
			if e.Favorite {
				t.Fatalf("expected favorite to default to false")
			}
			return nil
		},
		listItemsFunc: func(_ context.Context, _ string) ([]domain.WatchItem, error) {
			return []domain.WatchItem{{WatchEntry: domain.WatchEntry{AnimeID: 42}}}, nil
		},
	}
	svc := &WatchListService{Animes: &stubAnimeGetter{}, WatchLists: store}

	items, err := svc.Add(context.Background(), "user-1", AddEntryParams{AnimeID: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].AnimeID != 42 {
		t.Fatalf("unexpected list: %+v", items)
	}
}

func TestWatchListServiceAddMissingAnimeID(t *testing.T) {
	svc := &WatchListService{Animes: &stubAnimeGetter{}, WatchLists: &stubWatchListsStore{t: t}}

	_, err := svc.Add(context.Background(), "user-1", AddEntryParams{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWatchListServiceAddUnknownStatus(t *testing.T) {
	svc := &WatchListService{Animes: &stubAnimeGetter{}, WatchLists: &stubWatchListsStore{t: t}}

	bad := domain.WatchStatus("binging")
	_, err := svc.Add(context.Background(), "user-1", AddEntryParams{AnimeID: 42, Status: &bad})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWatchListServiceAddRatingOutOfRange(t *testing.T) {
	svc := &WatchListService{Animes: &stubAnimeGetter{}, WatchLists: &stubWatchListsStore{t: t}}

	rating := 10.5
	_, err := svc.Add(context.Background(), "user-1", AddEntryParams{AnimeID: 42, Rating: &rating})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestWatchListServiceAddUnknownAnime(t *testing.T) {
	animes := &stubAnimeGetter{
		getAnimeFunc: func(_ context.Context, _ int64) (domain.Anime, error) {
			return domain.Anime{}, domain.ErrNotFound
		},
	}
	svc := &WatchListService{Animes: animes, WatchLists: &stubWatchListsStore{t: t}}

	_, err := svc.Add(context.Background(), "user-1", AddEntryParams{AnimeID: 404})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestWatchListServiceAddDuplicate(t *testing.T) {
	store := &stubWatchListsStore{
		t: t,
		addEntryFunc: func(_ context.Context, _ string, _ domain.WatchEntry) error {
			return domain.ErrAlreadyInList
		},
	}
	svc := &WatchListService{Animes: &stubAnimeGetter{}, WatchLists: store}

	_, err := svc.Add(context.Background(), "user-1", AddEntryParams{AnimeID: 42})
	if !errors.Is(err, domain.ErrAlreadyInList) {
		t.Fatalf("expected already in list, got %v", err)
	}
}

func TestWatchListServiceUpdatePartial(t *testing.T) {
	status := domain.WatchStatusCompleted
	store := &stubWatchListsStore{
		t: t,
		updateEntryFunc: func(_ context.Context, userID string, animeID int64, upd domain.WatchEntryUpdate) error {
			if userID != "user-1" || animeID != 42 {
				t.Fatalf("unexpected target: %s %d", userID, animeID)
			}
			if upd.Status == nil || *upd.Status != domain.WatchStatusCompleted {
				t.Fatalf("status not forwarded: %+v", upd)
			}
			if upd.Rating != nil || upd.Notes != nil {
				t.Fatalf("untouched fields should stay nil: %+v", upd)
			}
			return nil
		},
		listItemsFunc: func(_ context.Context, _ string) ([]domain.WatchItem, error) {
			return []domain.WatchItem{}, nil
		},
	}
	svc := &WatchListService{Animes: &stubAnimeGetter{}, WatchLists: store}

	if _, err := svc.Update(context.Background(), "user-1", 42, domain.WatchEntryUpdate{Status: &status}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWatchListServiceToggleFavorite(t *testing.T) {
	store := &stubWatchListsStore{
		t: t,
		toggleFavoriteFunc: func(_ context.Context, _ string, animeID int64) (bool, error) {
			if animeID != 42 {
				t.Fatalf("unexpected anime id: %d", animeID)
			}
			return true, nil
		},
	}
	svc := &WatchListService{Animes: &stubAnimeGetter{}, WatchLists: store}

	fav, err := svc.ToggleFavorite(context.Background(), "user-1", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fav {
		t.Fatalf("expected favorite true after toggle")
	}
}

func TestWatchListServiceRemoveMissing(t *testing.T) {
	store := &stubWatchListsStore{
		t: t,
		removeEntryFunc: func(_ context.Context, _ string, _ int64) error {
			return domain.ErrNotFound
		},
	}
	svc := &WatchListService{Animes: &stubAnimeGetter{}, WatchLists: store}

	_, err := svc.Remove(context.Background(), "user-1", 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
