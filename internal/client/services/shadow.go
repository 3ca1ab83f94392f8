package services

import (
	"context"

	"github.com/dmitrijs2005/petzy/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/petzy/internal/prefs"
)

// Shadow keeps the last selected companion on local disk so it can be shown
// before the first snapshot arrives.
type Shadow struct {
	repo metadata.Repository
}

func NewShadow(repo metadata.Repository) *Shadow {
	return &Shadow{repo: repo}
}

// SaveCompanion skips the write when c matches what is already stored, since
// every snapshot mirrors the companion.
func (s *Shadow) SaveCompanion(ctx context.Context, c prefs.Companion) error {
	if prev, ok, err := s.repo.LoadCompanion(ctx); err == nil && ok && prev == c {
		return nil
	}
	return s.repo.SaveCompanion(ctx, c)
}

// LoadCompanion returns false when nothing was saved.
func (s *Shadow) LoadCompanion(ctx context.Context) (prefs.Companion, bool, error) {
	return s.repo.LoadCompanion(ctx)
}

func (s *Shadow) Clear(ctx context.Context) error {
	return s.repo.DeleteCompanion(ctx)
}
