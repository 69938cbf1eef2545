package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserWithPassword struct {
	User
	PasswordHash string `json:"-"`
}

// Anime is a public catalog record. IDs are externally assigned numeric
// identifiers, not database-generated.
type Anime struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Genres      []string  `json:"genre"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Added       time.Time `json:"added"`
}

// Profile is a user joined with their watch-list for profile reads.
type Profile struct {
	User
	Animes []WatchItem `json:"animes"`
}
