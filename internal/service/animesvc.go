package service

import (
	"context"
	"strings"

	"AnimeTrackserver/internal/domain"
)

type AnimesStore interface {
	ListAnimes(ctx context.Context) ([]domain.Anime, error)
	GetAnime(ctx context.Context, id int64) (domain.Anime, error)
	CreateAnime(ctx context.Context, a domain.Anime) (domain.Anime, error)
	UpdateAnime(ctx context.Context, a domain.Anime) (domain.Anime, error)
	DeleteAnime(ctx context.Context, id int64) error
}

type CatalogService struct {
	Animes AnimesStore
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Anime, error) {
	return s.Animes.ListAnimes(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (domain.Anime, error) {
	return s.Animes.GetAnime(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, a domain.Anime) (domain.Anime, error) {
	if err := validateAnime(a); err != nil {
		return domain.Anime{}, err
	}
	return s.Animes.CreateAnime(ctx, a)
}

func (s *CatalogService) Update(ctx context.Context, a domain.Anime) (domain.Anime, error) {
	if err := validateAnime(a); err != nil {
		return domain.Anime{}, err
	}
	return s.Animes.UpdateAnime(ctx, a)
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	return s.Animes.DeleteAnime(ctx, id)
}

func validateAnime(a domain.Anime) error {
	fields := map[string]string{}
	if a.ID <= 0 {
		fields["id"] = "must be a positive number"
	}
	if strings.TrimSpace(a.Title) == "" {
		fields["title"] = "required"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
