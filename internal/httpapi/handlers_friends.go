package httpapi

import (
	"net/http"

	"AnimeTrackserver/internal/domain"
)

func (a *api) handleFriendsList(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	friends, err := a.friendsSvc.ListFriends(r.Context(), ident.UserID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, friends)
}

type friendRequestRequest struct {
	ToUserID string `json:"toUserId"`
}

func (a *api) handleFriendsCreateRequest(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	var req friendRequestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	created, err := a.friendsSvc.CreateRequest(r.Context(), ident.UserID, req.ToUserID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (a *api) handleFriendsAccept(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	req, err := a.friendsSvc.Accept(r.Context(), ident.UserID, r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, req)
}

func (a *api) handleFriendsReject(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	req, err := a.friendsSvc.Reject(r.Context(), ident.UserID, r.PathValue("id"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, req)
}

func (a *api) handleFriendsIncoming(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	requests, err := a.friendsSvc.ListIncoming(r.Context(), ident.UserID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, requests)
}

func (a *api) handleFriendsOutgoing(w http.ResponseWriter, r *http.Request) {
	ident, ok := CurrentIdentity(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	requests, err := a.friendsSvc.ListOutgoing(r.Context(), ident.UserID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, requests)
}
