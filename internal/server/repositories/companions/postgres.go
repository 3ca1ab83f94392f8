package companions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/dbx"
	"github.com/dmitrijs2005/petzy/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Companion, error) {
	query := `SELECT id, name, file, object_key FROM companions ORDER BY sort_order, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select companions: %w", err)
	}
	defer rows.Close()

	var result []*models.Companion
	for rows.Next() {
		var item models.Companion
		if err := rows.Scan(&item.ID, &item.Name, &item.File, &item.ObjectKey); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Companion, error) {
	query := `SELECT id, name, file, object_key FROM companions WHERE id = $1`

	var item models.Companion
	err := r.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Name, &item.File, &item.ObjectKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &item, nil
}
