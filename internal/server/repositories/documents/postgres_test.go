package documents

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

var docColumns = []string{"id", "body", "version", "updated_at"}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	ts := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, body, version, updated_at FROM documents WHERE id = \$1$`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(docColumns).AddRow("alice", []byte(`{"username":"alice"}`), int64(4), ts))

	doc, err := repo.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &models.Document{ID: "alice", Body: []byte(`{"username":"alice"}`), Version: 4, UpdatedAt: ts}, doc)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM documents WHERE id = \$1$`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetForUpdate_LocksRow(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM documents WHERE id = \$1 FOR UPDATE`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(docColumns).AddRow("alice", []byte(`{}`), int64(1), time.Now()))

	doc, err := repo.GetForUpdate(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc.Version)
}

func TestGetForUpdate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FOR UPDATE`).WithArgs("alice").WillReturnError(errors.New("boom"))

	_, err := repo.GetForUpdate(context.Background(), "alice")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*boom`), err.Error())
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)INSERT INTO documents \(id, body, version\).*ON CONFLICT \(id\) DO NOTHING`

	mock.ExpectExec(q).WithArgs("alice", []byte(`{}`)).WillReturnResult(sqlmock.NewResult(0, 1))
	doc := &models.Document{ID: "alice", Body: []byte(`{}`)}
	require.NoError(t, repo.Create(context.Background(), doc))
	assert.Equal(t, int64(1), doc.Version)

	mock.ExpectExec(q).WithArgs("alice", []byte(`{}`)).WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Create(context.Background(), &models.Document{ID: "alice", Body: []byte(`{}`)})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	mock.ExpectExec(q).WithArgs("alice", []byte(`{}`)).WillReturnError(errors.New("down"))
	err = repo.Create(context.Background(), &models.Document{ID: "alice", Body: []byte(`{}`)})
	assert.Error(t, err)
}

func TestEnsureExists(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)INSERT INTO documents \(id, body, version\)\s+VALUES \(\$1, '\{\}'::jsonb, 0\)\s+ON CONFLICT \(id\) DO NOTHING`

	mock.ExpectExec(q).WithArgs("alice").WillReturnResult(sqlmock.NewResult(0, 1))
	created, err := repo.EnsureExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, created)

	mock.ExpectExec(q).WithArgs("alice").WillReturnResult(sqlmock.NewResult(0, 0))
	created, err = repo.EnsureExists(context.Background(), "alice")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)UPDATE documents\s+SET body = \$2, version = version \+ 1, updated_at = now\(\)\s+WHERE id = \$1\s+RETURNING version`

	mock.ExpectQuery(q).WithArgs("alice", []byte(`{"a":1}`)).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(8)))
	v, err := repo.Update(context.Background(), "alice", []byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, int64(8), v)

	mock.ExpectQuery(q).WithArgs("ghost", []byte(`{}`)).WillReturnError(sql.ErrNoRows)
	_, err = repo.Update(context.Background(), "ghost", []byte(`{}`))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
