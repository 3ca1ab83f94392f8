package models

// Companion is a selectable pet model. File is the path bundled with the
// client, ObjectKey the asset key in object storage.
type Companion struct {
	ID        string
	Name      string
	File      string
	ObjectKey string
}
