package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"AnimeTrackserver/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, errorEnvelope{Error: apiError{Code: code, Message: message}})
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteDomainError maps domain sentinels onto the wire. Client mistakes,
// including duplicates and a wrong password, are 400s; only a missing or
// broken token is a 401.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			WriteError(w, http.StatusBadRequest, "validation_error", verr.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, "validation_error", "invalid request")
	case errors.Is(err, domain.ErrUsernameTaken):
		WriteError(w, http.StatusBadRequest, "username_taken", "username already taken")
	case errors.Is(err, domain.ErrEmailTaken):
		WriteError(w, http.StatusBadRequest, "email_taken", "email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteError(w, http.StatusBadRequest, "invalid_credentials", "wrong password")
	case errors.Is(err, domain.ErrAnimeIDTaken):
		WriteError(w, http.StatusBadRequest, "anime_id_taken", "an anime with this id already exists")
	case errors.Is(err, domain.ErrAlreadyInList):
		WriteError(w, http.StatusBadRequest, "already_in_list", "anime is already in your list")
	case errors.Is(err, domain.ErrRequestSent):
		WriteError(w, http.StatusBadRequest, "request_already_sent", "friend request already sent")
	case errors.Is(err, domain.ErrRequestReceived):
		WriteError(w, http.StatusBadRequest, "request_already_received", "this user has already sent you a friend request")
	case errors.Is(err, domain.ErrAlreadyFriends):
		WriteError(w, http.StatusBadRequest, "already_friends", "you are already friends with this user")
	case errors.Is(err, domain.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		WriteError(w, http.StatusForbidden, "forbidden", "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "not found")
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
