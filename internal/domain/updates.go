package domain

// UserUpdate carries a partial profile update; nil fields are left unchanged.
type UserUpdate struct {
	Username     *string
	Email        *string
	Avatar       *string
	PasswordHash *string
}

// WatchEntryUpdate carries a partial watch-entry update; nil fields are left
// unchanged.
type WatchEntryUpdate struct {
	Status *WatchStatus
	Rating *float64
	Notes  *string
}
