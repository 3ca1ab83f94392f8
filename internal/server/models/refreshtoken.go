package models

import "time"

// RefreshToken is a server-stored opaque token bound to a user.
type RefreshToken struct {
	ID        string
	UserID    string
	UserName  string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
