package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/petzy/internal/client/client"
	"github.com/dmitrijs2005/petzy/internal/client/config"
	"github.com/dmitrijs2005/petzy/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/petzy/internal/client/services"
	"github.com/dmitrijs2005/petzy/internal/filex"
	"github.com/dmitrijs2005/petzy/internal/logging"
	"github.com/dmitrijs2005/petzy/internal/prefs"
	"github.com/dmitrijs2005/petzy/internal/stats"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

// preferenceSession is the part of services.PreferenceService the CLI
// drives directly.
type preferenceSession interface {
	Start(ctx context.Context, username string) error
	Stop()
	State() services.SyncState
	User() services.User
	RestoreCompanion(ctx context.Context) (prefs.Companion, bool)
}

type petActions interface {
	Perform(ctx context.Context, kind prefs.ActionKind, detail string) error
	Teleport(ctx context.Context, scene string) error
	SelectCompanion(ctx context.Context, petID string) (prefs.Companion, error)
	Companions(ctx context.Context) ([]prefs.Companion, error)
	Snapshot() stats.View
	History(days int) []services.HistoryDay
}

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService services.AuthService
	prefs       preferenceSession
	actions     petActions

	mu       sync.RWMutex
	userName string
	loggedIn bool
	Mode     Mode

	reader   *bufio.Reader
	assetDir string
}

// NewApp opens the local database, connects the API client and builds the
// services on top of them.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	formulas, err := c.Formulas()
	if err != nil {
		return nil, err
	}

	assetDir, err := filex.EnsureDir(filepath.Join(c.DataDir, "models"))
	if err != nil {
		return nil, err
	}

	dbPath, err := filex.DatabasePath(c.DataDir)
	if err != nil {
		return nil, err
	}
	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := client.NewPetzyClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{
		config:      c,
		logger:      logger,
		db:          db,
		authService: services.NewAuthService(apiClient, db),
		reader:      bufio.NewReader(os.Stdin),
		assetDir:    assetDir,
	}

	shadow := services.NewShadow(metadata.NewSQLiteRepository(db))
	ps := services.NewPreferenceService(apiClient, shadow, logger,
		services.WithCooldown(c.GuardCooldown),
		services.WithPresenter(app),
	)
	app.prefs = ps
	app.actions = services.NewActionService(ps, apiClient,
		services.WithLocation(loc),
		services.WithTargets(c.Targets()),
		services.WithFormulas(formulas),
	)

	return app, nil
}

// PresentCompanion announces the companion restored from local storage.
func (a *App) PresentCompanion(c prefs.Companion) {
	name := c.Name
	if name == "" {
		name = c.ID
	}
	if src := c.Source(); src != "" {
		printlnFn(fmt.Sprintf("Your companion %s is back (%s)", name, src))
		return
	}
	printlnFn(fmt.Sprintf("Your companion %s is back", name))
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed && a.logger != nil {
		a.logger.Info(context.Background(), "switched mode", "mode", string(mode))
	}
}

func (a *App) mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.Mode
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if a.prefs != nil {
			a.prefs.Stop()
		}
		_ = a.authService.Close(ctx)
		if a.db != nil {
			_ = a.db.Close()
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loggedIn
}

func (a *App) setSession(userName string, loggedIn bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = userName
	a.loggedIn = loggedIn
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		if a.mode() == ModeOnline {
			a.setMode(ModeOffline)
		}
		return
	}
	if a.mode() != ModeOnline {
		a.setMode(ModeOnline)
	}
	a.resubscribe(ctx)
}

// resubscribe restarts preference sync for a logged in user whose
// subscription could not be opened earlier.
func (a *App) resubscribe(ctx context.Context) {
	a.mu.RLock()
	name, loggedIn := a.userName, a.loggedIn
	a.mu.RUnlock()

	if !loggedIn || a.prefs == nil || a.prefs.State() != services.StateUnsubscribed {
		return
	}
	if err := a.prefs.Start(ctx, name); err != nil {
		a.logger.Warn(ctx, "preference sync still unavailable", "error", err)
	}
}
