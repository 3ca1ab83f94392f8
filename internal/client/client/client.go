package client

import (
	"context"

	"github.com/dmitrijs2005/petzy/internal/prefs"
)

// DocumentStore is the remote document store as the preference engine sees
// it. GetDocument returns common.ErrorNotFound for a missing document.
type DocumentStore interface {
	GetDocument(ctx context.Context, id string) (*prefs.Document, error)
	CreateOrMergeDocument(ctx context.Context, id string, fields map[string]any) error
	PartialUpdateDocument(ctx context.Context, id string, writes []prefs.Write) error
	// Subscribe delivers the current document and every later version to
	// onNext until the returned cancel func is called. A nil document means
	// it does not exist. Stream failures go to onError; delivery resumes
	// after reconnecting.
	Subscribe(ctx context.Context, id string, onNext func(*prefs.Document), onError func(error)) (func(), error)
}

// Catalog lists companions and resolves their model asset URLs.
type Catalog interface {
	ListCompanions(ctx context.Context) ([]prefs.Companion, error)
	ResolveModelURL(ctx context.Context, petID string) (prefs.Companion, error)
}

// Client is the full API of the Petzy backend.
type Client interface {
	DocumentStore
	Catalog
	Close() error
	Register(ctx context.Context, username, petName string, salt []byte, key []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, key []byte) error
	Logout()
	Ping(ctx context.Context) error
}
