package httpapi

import (
	"net/http"
	"strconv"

	"AnimeTrackserver/internal/domain"
)

func (a *api) handleUsersSearch(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	q := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, err := a.usersSvc.Search(r.Context(), ident.UserID, q, limit)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}
