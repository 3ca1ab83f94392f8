package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/petzy/internal/client/services"
	"github.com/dmitrijs2005/petzy/internal/logging"
	"github.com/dmitrijs2005/petzy/internal/prefs"
	"github.com/dmitrijs2005/petzy/internal/stats"
)

// capturePrintln collects everything printed through printlnFn.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(toString(v))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func stubInputs(t *testing.T, texts []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			return "", io.EOF
		}
		s := texts[i]
		i++
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAuth struct {
	regUser, regPet string
	regPass         []byte
	regErr          error

	onlineUser string
	onlineErr  error

	offlineUser string
	offlineErr  error

	clearCalled bool
	clearErr    error

	pingErr error
}

func (f *fakeAuth) Register(_ context.Context, user, pet string, pass []byte) error {
	f.regUser, f.regPet, f.regPass = user, pet, append([]byte(nil), pass...)
	return f.regErr
}
func (f *fakeAuth) OnlineLogin(_ context.Context, user string, _ []byte) error {
	f.onlineUser = user
	return f.onlineErr
}
func (f *fakeAuth) OfflineLogin(_ context.Context, user string, _ []byte) error {
	f.offlineUser = user
	return f.offlineErr
}
func (f *fakeAuth) ClearOfflineData(context.Context) error {
	f.clearCalled = true
	return f.clearErr
}
func (f *fakeAuth) Close(context.Context) error { return nil }
func (f *fakeAuth) Ping(context.Context) error  { return f.pingErr }

type fakeSession struct {
	started  []string
	stopped  int
	restored int
	startErr error
	state    services.SyncState
	user     services.User
}

func (f *fakeSession) Start(_ context.Context, username string) error {
	f.started = append(f.started, username)
	f.state = services.StateLive
	return f.startErr
}
func (f *fakeSession) Stop() {
	f.stopped++
	f.state = services.StateUnsubscribed
}
func (f *fakeSession) State() services.SyncState { return f.state }
func (f *fakeSession) User() services.User       { return f.user }
func (f *fakeSession) RestoreCompanion(context.Context) (prefs.Companion, bool) {
	f.restored++
	return prefs.Companion{}, false
}

type performed struct {
	kind   prefs.ActionKind
	detail string
}

type fakeActions struct {
	performed  []performed
	performErr error

	scenes      []string
	teleportErr error

	selected   []string
	selectRet  prefs.Companion
	selectErr  error
	companions []prefs.Companion

	view        stats.View
	historyDays []int
	history     []services.HistoryDay
}

func (f *fakeActions) Perform(_ context.Context, kind prefs.ActionKind, detail string) error {
	f.performed = append(f.performed, performed{kind, detail})
	return f.performErr
}
func (f *fakeActions) Teleport(_ context.Context, scene string) error {
	f.scenes = append(f.scenes, scene)
	return f.teleportErr
}
func (f *fakeActions) SelectCompanion(_ context.Context, id string) (prefs.Companion, error) {
	f.selected = append(f.selected, id)
	return f.selectRet, f.selectErr
}
func (f *fakeActions) Companions(context.Context) ([]prefs.Companion, error) {
	return f.companions, nil
}
func (f *fakeActions) Snapshot() stats.View { return f.view }
func (f *fakeActions) History(days int) []services.HistoryDay {
	f.historyDays = append(f.historyDays, days)
	return f.history
}

type testApp struct {
	*App
	auth    *fakeAuth
	session *fakeSession
	actions *fakeActions
}

func newTestApp() *testApp {
	ta := &testApp{auth: &fakeAuth{}, session: &fakeSession{}, actions: &fakeActions{}}
	ta.App = &App{
		logger:      logging.Nop(),
		authService: ta.auth,
		prefs:       ta.session,
		actions:     ta.actions,
	}
	return ta
}
