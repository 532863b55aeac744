package models

import "time"

// AuthorizedEmployee is one allow-list entry. Authorization is a plain
// membership check on the normalized email.
type AuthorizedEmployee struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
