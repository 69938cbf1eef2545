package domain

import "time"

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// FriendRequest is a directed invitation between two users. pending is the only
// non-terminal status: accepted and rejected requests are never reopened or
// deleted.
type FriendRequest struct {
	ID        string        `json:"id"`
	FromID    string        `json:"from"`
	ToID      string        `json:"to"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// FriendRequestView is a pending request joined with the counterpart's public
// profile, as returned by the incoming/outgoing listings.
type FriendRequestView struct {
	ID        string      `json:"id"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
}
