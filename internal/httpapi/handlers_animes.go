package httpapi

import (
	"net/http"
	"strconv"

	"AnimeTrackserver/internal/domain"
)

type animeRequest struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Genres      []string `json:"genre"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

func (a *api) handleAnimesList(w http.ResponseWriter, r *http.Request) {
	animes, err := a.catalogSvc.List(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, animes)
}

func (a *api) handleAnimesGet(w http.ResponseWriter, r *http.Request) {
	id, ok := animeIDPathValue(w, r, "id")
	if !ok {
		return
	}

	anime, err := a.catalogSvc.Get(r.Context(), id)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, anime)
}

func (a *api) handleAnimesCreate(w http.ResponseWriter, r *http.Request) {
	var req animeRequest
	if err := decodeJSONAllowUnknownFields(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	anime, err := a.catalogSvc.Create(r.Context(), domain.Anime{
		ID:          req.ID,
		Title:       req.Title,
		Genres:      req.Genres,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, anime)
}

func (a *api) handleAnimesUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := animeIDPathValue(w, r, "id")
	if !ok {
		return
	}

	var req animeRequest
	if err := decodeJSONAllowUnknownFields(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	anime, err := a.catalogSvc.Update(r.Context(), domain.Anime{
		ID:          id,
		Title:       req.Title,
		Genres:      req.Genres,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, anime)
}

func (a *api) handleAnimesDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := animeIDPathValue(w, r, "id")
	if !ok {
		return
	}

	if err := a.catalogSvc.Delete(r.Context(), id); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// animeIDPathValue parses the numeric catalog id out of the path. A
// non-numeric id reads as a missing resource, matching id lookups elsewhere.
func animeIDPathValue(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		WriteDomainError(w, domain.ErrNotFound)
		return 0, false
	}
	return id, true
}
