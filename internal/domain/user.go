package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	// Posts is a denormalized list of post ids owned by this user. It is
	// advisory: the user_id column on each post stays authoritative for
	// every ownership decision.
	Posts []uuid.UUID `json:"posts"`
}
