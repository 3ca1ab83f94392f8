// Package metadata is the local key/value store of the client. It holds the
// offline login material and the durable shadow of the selected companion.
package metadata

import (
	"context"

	"github.com/dmitrijs2005/petzy/internal/prefs"
)

// Well-known keys.
const (
	KeyUsername      = "username"
	KeySalt          = "salt"
	KeyVerifier      = "verifier"
	KeySelectedModel = "selected_model"
)

// Credentials is the offline login material of the last online login.
type Credentials struct {
	Username string
	Salt     []byte
	Verifier []byte
}

// Repository stores byte values by key, plus typed access to the records
// the client keeps. Get returns (nil, nil) for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// SaveCredentials writes all three credential keys. Run it inside a
	// transaction to keep them consistent.
	SaveCredentials(ctx context.Context, c Credentials) error
	// LoadCredentials reports false unless all three keys are present.
	LoadCredentials(ctx context.Context) (Credentials, bool, error)

	SaveCompanion(ctx context.Context, c prefs.Companion) error
	// LoadCompanion reports false when nothing usable was saved.
	LoadCompanion(ctx context.Context) (prefs.Companion, bool, error)
	DeleteCompanion(ctx context.Context) error
}
