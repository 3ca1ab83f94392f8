// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account row. UserName holds the normalized username, which is
// also the id of the user's document; DisplayName keeps the original casing.
type User struct {
	ID          string
	UserName    string
	DisplayName string
	Salt        []byte
	Verifier    []byte
	CreatedAt   time.Time
}
