package httpapi

import (
	"net/http"

	"AnimeTrackserver/internal/domain"
	"AnimeTrackserver/internal/service"
)

func (a *api) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	p, err := a.profileSvc.Get(r.Context(), ident.UserID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

func (a *api) handleProfileGetByID(w http.ResponseWriter, r *http.Request) {
	p, err := a.profileSvc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

type profileUpdateRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password"`
}

func (a *api) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req profileUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	u, err := a.profileSvc.Update(r.Context(), ident.UserID, service.ProfileUpdateParams{
		Username: req.Username,
		Email:    req.Email,
		Avatar:   req.Avatar,
		Password: req.Password,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, u)
}

func (a *api) handleProfileDelete(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	if err := a.profileSvc.Delete(r.Context(), ident.UserID); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
