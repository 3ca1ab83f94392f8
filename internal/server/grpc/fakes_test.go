package grpc

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/logging"
	"github.com/dmitrijs2005/petzy/internal/prefs"
	"github.com/dmitrijs2005/petzy/internal/server/auth"
	"github.com/dmitrijs2005/petzy/internal/server/hub"
	"github.com/dmitrijs2005/petzy/internal/server/models"
	"github.com/dmitrijs2005/petzy/internal/server/services"
)

const testSecret = "k"

type fakeUser struct {
	refreshResp *services.TokenPair
	refreshErr  error

	regResp *models.User
	regErr  error
	regPet  string

	saltResp []byte
	saltErr  error

	loginResp *services.TokenPair
	loginErr  error
}

func (f *fakeUser) RefreshToken(ctx context.Context, refresh string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}

func (f *fakeUser) Register(ctx context.Context, username, petName string, salt []byte, verifier []byte) (*models.User, error) {
	f.regPet = petName
	return f.regResp, f.regErr
}

func (f *fakeUser) GetSalt(ctx context.Context, username string) ([]byte, error) {
	return f.saltResp, f.saltErr
}

func (f *fakeUser) Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error) {
	return f.loginResp, f.loginErr
}

// fakeDocs is an in-memory document service publishing through a real hub.
type fakeDocs struct {
	mu     sync.Mutex
	hub    *hub.Hub
	docs   map[string]*models.Document
	writes []prefs.Write
	fields map[string]any
	err    error
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{hub: hub.New(4), docs: map[string]*models.Document{}}
}

func (f *fakeDocs) Get(ctx context.Context, id string) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.docs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDocs) CreateOrMerge(ctx context.Context, id string, fields map[string]any) (int64, error) {
	f.mu.Lock()
	f.fields = fields
	f.mu.Unlock()
	return f.bump(id, `{"merged":true}`)
}

func (f *fakeDocs) PartialUpdate(ctx context.Context, id string, writes []prefs.Write) (int64, error) {
	f.mu.Lock()
	f.writes = append(f.writes, writes...)
	_, exists := f.docs[id]
	f.mu.Unlock()
	if !exists {
		return 0, common.ErrorNotFound
	}
	return f.bump(id, `{"updated":true}`)
}

func (f *fakeDocs) bump(id, body string) (int64, error) {
	f.mu.Lock()
	if f.err != nil {
		f.mu.Unlock()
		return 0, f.err
	}
	d, ok := f.docs[id]
	if !ok {
		d = &models.Document{ID: id}
		f.docs[id] = d
	}
	d.Body = []byte(body)
	d.Version++
	cp := *d
	f.mu.Unlock()

	f.hub.Publish(&cp)
	return cp.Version, nil
}

func (f *fakeDocs) Subscribe(id string) *hub.Subscription { return f.hub.Subscribe(id) }
func (f *fakeDocs) Unsubscribe(sub *hub.Subscription)     { f.hub.Unsubscribe(sub) }

type fakeCatalog struct {
	items   []*models.Companion
	listErr error
	url     string
	urlErr  error
}

func (f *fakeCatalog) List(ctx context.Context) ([]*models.Companion, error) {
	return f.items, f.listErr
}

func (f *fakeCatalog) ResolveModelURL(ctx context.Context, petID string) (*services.ResolvedCompanion, error) {
	if f.urlErr != nil {
		return nil, f.urlErr
	}
	for _, c := range f.items {
		if c.ID == petID {
			return &services.ResolvedCompanion{Companion: *c, URL: f.url}, nil
		}
	}
	return nil, common.ErrorNotFound
}

func newServer(u userSvc, d documentSvc, c catalogSvc) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Nop(), u, d, c, testSecret)
}

// authedCtx returns a context carrying claims for userName, as the
// interceptors would leave it.
func authedCtx(userName string) context.Context {
	return context.WithValue(context.Background(), claimsKey, &auth.Claims{UserID: "id-" + userName, UserName: userName})
}

func mustToken(userName string) string {
	tok, err := auth.GenerateToken("id-"+userName, userName, []byte(testSecret), time.Hour)
	if err != nil {
		panic(err)
	}
	return tok
}
