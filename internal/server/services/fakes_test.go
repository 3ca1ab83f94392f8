package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/dbx"
	"github.com/dmitrijs2005/petzy/internal/server/models"
	"github.com/dmitrijs2005/petzy/internal/server/repositories/companions"
	"github.com/dmitrijs2005/petzy/internal/server/repositories/documents"
	"github.com/dmitrijs2005/petzy/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/petzy/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	created   []*models.User

	getOut *models.User
	getErr error
	getArg string
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	if f.createOut != nil {
		return f.createOut, nil
	}
	out := *u
	out.ID = "id-" + u.UserName
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	f.getArg = userName
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	delErr    error
	createErr error

	expiredN int64
	created  []string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, userID)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error { return f.delErr }

func (f *fakeRefreshRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return f.expiredN, nil
}

// fakeDocsRepo keeps documents in memory. Transactions are not modelled;
// sqlmock covers begin/commit/rollback.
type fakeDocsRepo struct {
	mu        sync.Mutex
	docs      map[string]*models.Document
	createErr error
	updateErr error
}

func newFakeDocsRepo() *fakeDocsRepo {
	return &fakeDocsRepo{docs: map[string]*models.Document{}}
}

func (f *fakeDocsRepo) seed(id, body string, version int64) {
	f.docs[id] = &models.Document{ID: id, Body: []byte(body), Version: version}
}

func (f *fakeDocsRepo) Get(ctx context.Context, id string) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocsRepo) GetForUpdate(ctx context.Context, id string) (*models.Document, error) {
	return f.Get(ctx, id)
}

func (f *fakeDocsRepo) Create(ctx context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.docs[doc.ID]; ok {
		return common.ErrorAlreadyExists
	}
	doc.Version = 1
	cp := *doc
	f.docs[doc.ID] = &cp
	return nil
}

func (f *fakeDocsRepo) EnsureExists(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; ok {
		return false, nil
	}
	f.docs[id] = &models.Document{ID: id, Body: []byte(`{}`)}
	return true, nil
}

func (f *fakeDocsRepo) Update(ctx context.Context, id string, body []byte) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	d, ok := f.docs[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	d.Body = append([]byte(nil), body...)
	d.Version++
	return d.Version, nil
}

type fakeCompanionsRepo struct {
	items   []*models.Companion
	listErr error
}

func (f *fakeCompanionsRepo) List(ctx context.Context) ([]*models.Companion, error) {
	return f.items, f.listErr
}

func (f *fakeCompanionsRepo) GetByID(ctx context.Context, id string) (*models.Companion, error) {
	for _, c := range f.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	d *fakeDocsRepo
	c *fakeCompanionsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Documents(dbx.DBTX) documents.Repository         { return m.d }
func (m *fakeRepoManager) Companions(dbx.DBTX) companions.Repository       { return m.c }
