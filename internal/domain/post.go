package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author,omitempty"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	UserID    uuid.UUID `json:"-"`
	CreatedAt time.Time `json:"created_at"`

	// Joined field: the owner expanded for responses.
	User *PostOwner `json:"user,omitempty"`
}

// PostOwner is the subset of the owning user embedded in post responses.
type PostOwner struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
}
