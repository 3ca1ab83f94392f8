// Package companions reads the catalog of selectable pet models.
package companions

import (
	"context"

	"github.com/dmitrijs2005/petzy/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Companion, error)
	// GetByID returns the companion or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Companion, error)
}
