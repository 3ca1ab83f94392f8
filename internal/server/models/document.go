package models

import "time"

// Document is a stored preferences document. Body is the JSON object,
// Version increases by one on every committed change.
type Document struct {
	ID        string
	Body      []byte
	Version   int64
	UpdatedAt time.Time
}
