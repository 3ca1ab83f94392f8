package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dmitrijs2005/petzy/internal/dbx"
	"github.com/dmitrijs2005/petzy/internal/prefs"
)

// SQLiteRepository keeps metadata in the local SQLite database.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository binds the repository to a *sql.DB or a *sql.Tx.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata`)
	if err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM metadata`)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]byte)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) SaveCredentials(ctx context.Context, c Credentials) error {
	if err := r.Set(ctx, KeyUsername, []byte(c.Username)); err != nil {
		return err
	}
	if err := r.Set(ctx, KeySalt, c.Salt); err != nil {
		return err
	}
	return r.Set(ctx, KeyVerifier, c.Verifier)
}

func (r *SQLiteRepository) LoadCredentials(ctx context.Context) (Credentials, bool, error) {
	values := make([][]byte, 3)
	for i, key := range []string{KeyUsername, KeySalt, KeyVerifier} {
		v, err := r.Get(ctx, key)
		if err != nil {
			return Credentials{}, false, err
		}
		if v == nil {
			return Credentials{}, false, nil
		}
		values[i] = v
	}
	return Credentials{Username: string(values[0]), Salt: values[1], Verifier: values[2]}, true, nil
}

// SaveCompanion stores c as a protobuf-encoded structpb.Struct.
func (r *SQLiteRepository) SaveCompanion(ctx context.Context, c prefs.Companion) error {
	st, err := structpb.NewStruct(c.ToMap())
	if err != nil {
		return fmt.Errorf("encode companion: %w", err)
	}
	b, err := proto.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode companion: %w", err)
	}
	return r.Set(ctx, KeySelectedModel, b)
}

func (r *SQLiteRepository) LoadCompanion(ctx context.Context) (prefs.Companion, bool, error) {
	b, err := r.Get(ctx, KeySelectedModel)
	if err != nil {
		return prefs.Companion{}, false, err
	}
	if len(b) == 0 {
		return prefs.Companion{}, false, nil
	}

	var st structpb.Struct
	if err := proto.Unmarshal(b, &st); err != nil {
		return prefs.Companion{}, false, fmt.Errorf("decode companion: %w", err)
	}
	c := prefs.CompanionFromMap(st.AsMap())
	if c.IsZero() {
		return prefs.Companion{}, false, nil
	}
	return c, true, nil
}

func (r *SQLiteRepository) DeleteCompanion(ctx context.Context) error {
	return r.Delete(ctx, KeySelectedModel)
}
