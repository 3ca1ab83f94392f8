package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/petzy/internal/client/services"
	"github.com/dmitrijs2005/petzy/internal/logging"
	"github.com/dmitrijs2005/petzy/internal/prefs"
)

func TestIsLoggedIn(t *testing.T) {
	app := &App{}
	if app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == false for a fresh app")
	}
	app.setSession("alice", true)
	if !app.isLoggedIn() {
		t.Fatalf("expected isLoggedIn() == true after setSession")
	}
}

func TestSetMode_ChangesAndLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	app := &App{logger: logging.NewTextLogger(&buf, "info")}

	app.setMode(ModeOnline)
	if app.mode() != ModeOnline {
		t.Fatalf("expected mode to be %q, got %q", ModeOnline, app.mode())
	}
	if got := buf.String(); got == "" {
		t.Fatalf("expected log output on mode change, got empty")
	}

	buf.Reset()

	app.setMode(ModeOnline)
	if got := buf.String(); got != "" {
		t.Fatalf("expected no log output when mode doesn't change, got: %q", got)
	}

	app.setMode(ModeOffline)
	if app.mode() != ModeOffline {
		t.Fatalf("expected mode to be %q, got %q", ModeOffline, app.mode())
	}
	if got := buf.String(); got == "" {
		t.Fatalf("expected log output on mode change to offline, got empty")
	}
}

func TestCheckOnline_Transitions(t *testing.T) {
	a := newTestApp()
	ctx := context.Background()

	a.checkOnline(ctx)
	assert.Equal(t, ModeOnline, a.mode())

	a.auth.pingErr = errors.New("down")
	a.checkOnline(ctx)
	assert.Equal(t, ModeOffline, a.mode())

	a.setMode(ModeDisabled)
	a.checkOnline(ctx)
	assert.Equal(t, ModeDisabled, a.mode(), "only online degrades to offline")

	a.auth.pingErr = nil
	a.checkOnline(ctx)
	assert.Equal(t, ModeOnline, a.mode())
}

func TestCheckOnline_RestartsFailedSync(t *testing.T) {
	a := newTestApp()
	ctx := context.Background()

	a.checkOnline(ctx)
	assert.Empty(t, a.session.started, "not logged in")

	a.setSession("alice", true)
	a.session.state = services.StateUnsubscribed
	a.checkOnline(ctx)
	assert.Equal(t, []string{"alice"}, a.session.started)

	a.checkOnline(ctx)
	assert.Equal(t, []string{"alice"}, a.session.started, "live sync is left alone")

	a.session.state = services.StateUnsubscribed
	a.auth.pingErr = errors.New("down")
	a.checkOnline(ctx)
	assert.Len(t, a.session.started, 1)
}

func TestStartOnlineStatusWatcher_StopsOnCancel(t *testing.T) {
	a := newTestApp()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, time.Hour)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestPresentCompanion(t *testing.T) {
	lines := capturePrintln(t)
	a := newTestApp()

	a.PresentCompanion(prefs.Companion{ID: "fox", Name: "Fox", URL: "https://x/fox.glb"})
	a.PresentCompanion(prefs.Companion{ID: "cat"})

	assert.Equal(t, []string{
		"Your companion Fox is back (https://x/fox.glb)",
		"Your companion cat is back",
	}, *lines)
}
