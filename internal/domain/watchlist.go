package domain

import "time"

type WatchStatus string

const (
	WatchStatusPlan      WatchStatus = "plan"
	WatchStatusWatching  WatchStatus = "watching"
	WatchStatusCompleted WatchStatus = "completed"
	WatchStatusDropped   WatchStatus = "dropped"
	WatchStatusOnHold    WatchStatus = "on-hold"
)

func ValidWatchStatus(s WatchStatus) bool {
	switch s {
	case WatchStatusPlan, WatchStatusWatching, WatchStatusCompleted, WatchStatusDropped, WatchStatusOnHold:
		return true
	}
	return false
}

// WatchEntry is one row of a user's watch-list. At most one entry exists per
// anime for a given user.
type WatchEntry struct {
	AnimeID  int64       `json:"anime_id"`
	Status   WatchStatus `json:"status"`
	Rating   *float64    `json:"rating,omitempty"`
	Favorite bool        `json:"favorite"`
	Notes    string      `json:"notes,omitempty"`
	AddedAt  time.Time   `json:"added_at"`
}

// WatchItem is a watch entry joined with its catalog metadata. Entries whose
// anime no longer exists in the catalog are dropped at read time and never
// appear as a WatchItem.
type WatchItem struct {
	WatchEntry
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Genres      []string `json:"genre"`
	Description string   `json:"description"`
}
