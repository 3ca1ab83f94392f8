package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/dbx"
	"github.com/dmitrijs2005/petzy/internal/server/models"
)

// PostgresRepository implements document storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT id, body, version, updated_at FROM documents WHERE id = $1`
	return r.selectOne(ctx, query, id)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT id, body, version, updated_at FROM documents WHERE id = $1 FOR UPDATE`
	return r.selectOne(ctx, query, id)
}

func (r *PostgresRepository) selectOne(ctx context.Context, query string, id string) (*models.Document, error) {
	doc := &models.Document{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&doc.ID, &doc.Body, &doc.Version, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (id, body, version)
		VALUES ($1, $2, 1)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, doc.ID, doc.Body)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		doc.Version = 1
		return nil
	case 0:
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) EnsureExists(ctx context.Context, id string) (bool, error) {
	query := `
		INSERT INTO documents (id, body, version)
		VALUES ($1, '{}'::jsonb, 0)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, body []byte) (int64, error) {
	query := `
		UPDATE documents
		SET body = $2, version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING version
	`
	var version int64
	if err := r.db.QueryRowContext(ctx, query, id, body).Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return version, nil
}
