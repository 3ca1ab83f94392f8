// Package documents persists per-user preference documents as JSONB rows.
package documents

import (
	"context"

	"github.com/dmitrijs2005/petzy/internal/server/models"
)

type Repository interface {
	// Get returns the document or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.Document, error)
	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id string) (*models.Document, error)
	// Create inserts a new document; common.ErrorAlreadyExists if id is taken.
	Create(ctx context.Context, doc *models.Document) error
	// EnsureExists inserts an empty document unless one exists and reports
	// whether it created one.
	EnsureExists(ctx context.Context, id string) (bool, error)
	// Update replaces the body, bumps the version and returns it.
	Update(ctx context.Context, id string, body []byte) (int64, error)
}
