package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/dbx"
	"github.com/dmitrijs2005/petzy/internal/logging"
	"github.com/dmitrijs2005/petzy/internal/prefs"
	"github.com/dmitrijs2005/petzy/internal/server/hub"
	"github.com/dmitrijs2005/petzy/internal/server/metrics"
	"github.com/dmitrijs2005/petzy/internal/server/models"
	"github.com/dmitrijs2005/petzy/internal/server/repositories/documents"
	"github.com/dmitrijs2005/petzy/internal/server/repositories/repomanager"
)

const (
	opPartialUpdate = "partial_update"
	opCreateOrMerge = "create_or_merge"
)

var (
	ErrNoWrites     = errors.New("no writes")
	ErrInvalidWrite = errors.New("invalid write")
	ErrInvalidBody  = errors.New("document body is not a JSON object")
)

// DocumentService is the remote document store. Every mutation runs in a
// transaction holding the document's row lock, so concurrent increments on
// the same document serialize. Committed documents are published to the hub.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hub         *hub.Hub
	logger      logging.Logger
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, h *hub.Hub, logger logging.Logger) *DocumentService {
	return &DocumentService{
		db:          db,
		repomanager: m,
		hub:         h,
		logger:      logger.With("module", "documents"),
	}
}

// Get returns the stored document or common.ErrorNotFound.
func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	return s.repomanager.Documents(s.db).Get(ctx, id)
}

// PartialUpdate applies writes to an existing document and returns the new
// version. A missing document yields common.ErrorNotFound.
func (s *DocumentService) PartialUpdate(ctx context.Context, id string, writes []prefs.Write) (int64, error) {
	started := time.Now()
	if len(writes) == 0 {
		return 0, ErrNoWrites
	}
	for _, w := range writes {
		if err := prefs.ValidatePath(w.Path); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidWrite, err)
		}
		if w.Op != prefs.OpSet && w.Op != prefs.OpIncrement {
			return 0, fmt.Errorf("%w: unknown op %q", ErrInvalidWrite, w.Op)
		}
	}

	doc, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Document, error) {
		repo := s.repomanager.Documents(tx)

		current, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}

		body, err := decodeBody(current.Body)
		if err != nil {
			return nil, err
		}
		if err := prefs.Apply(body, writes); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWrite, err)
		}
		return s.store(ctx, repo, id, body)
	})

	s.finish(ctx, opPartialUpdate, started, doc, err)
	if err != nil {
		return 0, err
	}
	for _, w := range writes {
		metrics.CountFieldWrite(string(w.Op))
	}
	return doc.Version, nil
}

// CreateOrMerge deep-merges fields into the document, creating it when
// absent, and returns the new version.
func (s *DocumentService) CreateOrMerge(ctx context.Context, id string, fields map[string]any) (int64, error) {
	started := time.Now()

	doc, err := dbx.WithTxResult(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Document, error) {
		repo := s.repomanager.Documents(tx)

		created, err := repo.EnsureExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if created {
			s.logger.Info(ctx, "document created by merge", "document", id)
		}

		current, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(current.Body)
		if err != nil {
			return nil, err
		}
		return s.store(ctx, repo, id, prefs.MergeDeep(body, fields))
	})

	s.finish(ctx, opCreateOrMerge, started, doc, err)
	if err != nil {
		return 0, err
	}
	return doc.Version, nil
}

// Subscribe registers a live feed for id. The caller must Unsubscribe.
func (s *DocumentService) Subscribe(id string) *hub.Subscription {
	return s.hub.Subscribe(id)
}

func (s *DocumentService) Unsubscribe(sub *hub.Subscription) {
	s.hub.Unsubscribe(sub)
}

func (s *DocumentService) store(ctx context.Context, repo documents.Repository, id string, body map[string]any) (*models.Document, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	version, err := repo.Update(ctx, id, encoded)
	if err != nil {
		return nil, err
	}
	return &models.Document{ID: id, Body: encoded, Version: version}, nil
}

// finish records the outcome and publishes committed documents.
func (s *DocumentService) finish(ctx context.Context, op string, started time.Time, doc *models.Document, err error) {
	switch {
	case err == nil:
		metrics.ObserveWrite(op, metrics.ResultOK, started)
		s.logger.Debug(ctx, "document written", "op", op, "document", doc.ID, "version", doc.Version)
		s.hub.Publish(doc)
	case errors.Is(err, common.ErrorNotFound):
		metrics.ObserveWrite(op, metrics.ResultNotFound, started)
	default:
		metrics.ObserveWrite(op, metrics.ResultError, started)
		s.logger.Error(ctx, "document write failed", "op", op, "error", err)
	}
}

// decodeBody parses a stored body keeping integers exact.
func decodeBody(raw []byte) (map[string]any, error) {
	body := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return body, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}
