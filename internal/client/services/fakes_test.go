package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"io/fs"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/petzy/internal/client/migrations"
	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/prefs"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	b, err := fs.ReadFile(migrations.Migrations, "00001_metadata.sql")
	require.NoError(t, err)
	up, _, _ := strings.Cut(string(b), "-- +goose Down")
	_, err = db.Exec(up)
	require.NoError(t, err)
	return db
}

type subscription struct {
	id        string
	onNext    func(*prefs.Document)
	onError   func(error)
	cancelled bool
}

// fakeClient is an in-memory backend. Documents are kept as generic maps
// and every successful write is pushed synchronously to live subscribers
// of that document unless holdPushes is set.
type fakeClient struct {
	mu   sync.Mutex
	docs map[string]map[string]any
	subs []*subscription

	holdPushes bool

	getErr       error
	createErr    error
	updateErr    error
	subscribeErr error

	gets, creates, updates int
	lastWrites             []prefs.Write
	lastFields             map[string]any

	companions []prefs.Companion
	resolveErr error

	closeErr    error
	registerErr error
	saltRet     []byte
	saltErr     error
	loginErr    error
	pingErr     error
	loggedOut   bool

	lastRegisterUser, lastRegisterPet string
	lastRegisterSalt, lastRegisterKey []byte
	lastLoginUser                     string
	lastLoginKey                      []byte
}

func newFakeClient() *fakeClient {
	return &fakeClient{docs: map[string]map[string]any{}}
}

// seed stores d under its UsernameLC.
func (f *fakeClient) seed(t *testing.T, d prefs.Document) {
	t.Helper()
	m, err := prefs.ToMap(d)
	require.NoError(t, err)
	f.mu.Lock()
	f.docs[d.UsernameLC] = m
	f.mu.Unlock()
}

func (f *fakeClient) document(id string) *prefs.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.decodeLocked(id)
}

func (f *fakeClient) decodeLocked(id string) *prefs.Document {
	m, ok := f.docs[id]
	if !ok {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	d, err := prefs.DecodeDocument(b)
	if err != nil {
		panic(err)
	}
	return d
}

// push delivers the current version of id to its live subscribers.
func (f *fakeClient) push(id string) {
	f.mu.Lock()
	doc := f.decodeLocked(id)
	var targets []*subscription
	for _, s := range f.subs {
		if s.id == id && !s.cancelled {
			targets = append(targets, s)
		}
	}
	f.mu.Unlock()

	for _, s := range targets {
		s.onNext(doc)
	}
}

// fail reports err to every live subscriber.
func (f *fakeClient) fail(err error) {
	f.mu.Lock()
	var targets []*subscription
	for _, s := range f.subs {
		if !s.cancelled {
			targets = append(targets, s)
		}
	}
	f.mu.Unlock()

	for _, s := range targets {
		s.onError(err)
	}
}

func (f *fakeClient) liveSubscriptions() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.subs {
		if !s.cancelled {
			n++
		}
	}
	return n
}

func (f *fakeClient) afterWrite(id string) {
	f.mu.Lock()
	hold := f.holdPushes
	f.mu.Unlock()
	if !hold {
		f.push(id)
	}
}

func (f *fakeClient) GetDocument(ctx context.Context, id string) (*prefs.Document, error) {
	f.mu.Lock()
	f.gets++
	if f.getErr != nil {
		err := f.getErr
		f.mu.Unlock()
		return nil, err
	}
	d := f.decodeLocked(id)
	f.mu.Unlock()
	if d == nil {
		return nil, common.ErrorNotFound
	}
	return d, nil
}

func (f *fakeClient) CreateOrMergeDocument(ctx context.Context, id string, fields map[string]any) error {
	f.mu.Lock()
	f.creates++
	f.lastFields = fields
	if f.createErr != nil {
		err := f.createErr
		f.mu.Unlock()
		return err
	}
	generic, err := prefs.ToMap(fields)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	f.docs[id] = prefs.MergeDeep(f.docs[id], generic)
	f.mu.Unlock()

	f.afterWrite(id)
	return nil
}

func (f *fakeClient) PartialUpdateDocument(ctx context.Context, id string, writes []prefs.Write) error {
	f.mu.Lock()
	f.updates++
	f.lastWrites = writes
	if f.updateErr != nil {
		err := f.updateErr
		f.mu.Unlock()
		return err
	}
	doc, ok := f.docs[id]
	if !ok {
		f.mu.Unlock()
		return common.ErrorNotFound
	}
	if err := prefs.Apply(doc, normalizeWrites(writes)); err != nil {
		f.mu.Unlock()
		return err
	}
	f.mu.Unlock()

	f.afterWrite(id)
	return nil
}

// normalizeWrites gives literal values their decoded JSON shape, as the
// transport would.
func normalizeWrites(writes []prefs.Write) []prefs.Write {
	out := make([]prefs.Write, len(writes))
	for i, w := range writes {
		if w.Op == prefs.OpSet {
			b, err := json.Marshal(w.Value)
			if err != nil {
				panic(err)
			}
			var v any
			if err := json.Unmarshal(b, &v); err != nil {
				panic(err)
			}
			w.Value = v
		}
		out[i] = w
	}
	return out
}

func (f *fakeClient) Subscribe(ctx context.Context, id string, onNext func(*prefs.Document), onError func(error)) (func(), error) {
	f.mu.Lock()
	if f.subscribeErr != nil {
		err := f.subscribeErr
		f.mu.Unlock()
		return nil, err
	}
	s := &subscription{id: id, onNext: onNext, onError: onError}
	f.subs = append(f.subs, s)
	hold := f.holdPushes
	f.mu.Unlock()

	if !hold {
		onNext(f.document(id))
	}

	return func() {
		f.mu.Lock()
		s.cancelled = true
		f.mu.Unlock()
	}, nil
}

func (f *fakeClient) ListCompanions(ctx context.Context) ([]prefs.Companion, error) {
	return f.companions, nil
}

func (f *fakeClient) ResolveModelURL(ctx context.Context, petID string) (prefs.Companion, error) {
	if f.resolveErr != nil {
		return prefs.Companion{}, f.resolveErr
	}
	for _, c := range f.companions {
		if c.ID == petID {
			c.URL = "https://assets.example/" + c.File + "?sig=1"
			return c, nil
		}
	}
	return prefs.Companion{}, common.ErrorNotFound
}

func (f *fakeClient) Close() error { return f.closeErr }

func (f *fakeClient) Register(ctx context.Context, username, petName string, salt []byte, key []byte) error {
	f.lastRegisterUser = username
	f.lastRegisterPet = petName
	f.lastRegisterSalt = append([]byte(nil), salt...)
	f.lastRegisterKey = append([]byte(nil), key...)
	return f.registerErr
}

func (f *fakeClient) GetSalt(ctx context.Context, username string) ([]byte, error) {
	return append([]byte(nil), f.saltRet...), f.saltErr
}

func (f *fakeClient) Login(ctx context.Context, username string, key []byte) error {
	f.lastLoginUser = username
	f.lastLoginKey = append([]byte(nil), key...)
	return f.loginErr
}

func (f *fakeClient) Logout() { f.loggedOut = true }

func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }
