package httpapi

import (
	"net/http"

	"AnimeTrackserver/internal/domain"
	"AnimeTrackserver/internal/service"
)

func (a *api) handleWatchListGet(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	items, err := a.watchListSvc.List(r.Context(), ident.UserID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

type watchListAddRequest struct {
	AnimeID int64               `json:"animeId"`
	Status  *domain.WatchStatus `json:"status"`
	Rating  *float64            `json:"rating"`
	Notes   string              `json:"notes"`
}

func (a *api) handleWatchListAdd(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req watchListAddRequest
	if err := decodeJSONAllowUnknownFields(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	items, err := a.watchListSvc.Add(r.Context(), ident.UserID, service.AddEntryParams{
		AnimeID: req.AnimeID,
		Status:  req.Status,
		Rating:  req.Rating,
		Notes:   req.Notes,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, items)
}

type watchListUpdateRequest struct {
	Status *domain.WatchStatus `json:"status"`
	Rating *float64            `json:"rating"`
	Notes  *string             `json:"notes"`
}

func (a *api) handleWatchListUpdate(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	animeID, ok := animeIDPathValue(w, r, "animeId")
	if !ok {
		return
	}

	var req watchListUpdateRequest
	if err := decodeJSONAllowUnknownFields(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	items, err := a.watchListSvc.Update(r.Context(), ident.UserID, animeID, domain.WatchEntryUpdate{
		Status: req.Status,
		Rating: req.Rating,
		Notes:  req.Notes,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (a *api) handleWatchListRemove(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	animeID, ok := animeIDPathValue(w, r, "animeId")
	if !ok {
		return
	}

	items, err := a.watchListSvc.Remove(r.Context(), ident.UserID, animeID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

func (a *api) handleWatchListToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	animeID, ok := animeIDPathValue(w, r, "animeId")
	if !ok {
		return
	}

	favorite, err := a.watchListSvc.ToggleFavorite(r.Context(), ident.UserID, animeID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"anime_id": animeID, "favorite": favorite})
}
