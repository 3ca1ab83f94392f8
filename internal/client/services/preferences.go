package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/petzy/internal/client/client"
	"github.com/dmitrijs2005/petzy/internal/client/guard"
	"github.com/dmitrijs2005/petzy/internal/common"
	"github.com/dmitrijs2005/petzy/internal/logging"
	"github.com/dmitrijs2005/petzy/internal/prefs"
)

// SyncState is the subscription lifecycle of a PreferenceService.
type SyncState int

const (
	StateUnsubscribed SyncState = iota
	StateLoading
	StateLive
)

func (s SyncState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLive:
		return "live"
	}
	return "unsubscribed"
}

// User is the identity part of the subscribed document.
type User struct {
	Username   string
	UsernameLC string
	PetName    string
	CreatedAt  string
}

// CompanionPresenter shows a companion restored from the local shadow.
type CompanionPresenter interface {
	PresentCompanion(c prefs.Companion)
}

// PreferenceService mirrors the preferences of one user. The subscription
// callback is the only writer of the cache; Update and GuardedUpdate write
// to the store and never touch the cache directly.
type PreferenceService struct {
	store     client.DocumentStore
	shadow    *Shadow
	guard     *guard.Guard
	cooldown  time.Duration
	logger    logging.Logger
	presenter CompanionPresenter

	mu          sync.RWMutex
	identity    string
	displayName string
	user        User
	cache       prefs.Preferences
	state       SyncState
	generation  uint64
	unsubscribe func()
	listeners   []func(prefs.Preferences)
}

type PreferenceOption func(*PreferenceService)

// WithGuard replaces the default guard.
func WithGuard(g *guard.Guard) PreferenceOption {
	return func(s *PreferenceService) { s.guard = g }
}

// WithCooldown sets the window used when GuardedUpdate gets no cooldown.
func WithCooldown(d time.Duration) PreferenceOption {
	return func(s *PreferenceService) {
		if d > 0 {
			s.cooldown = d
		}
	}
}

func WithPresenter(p CompanionPresenter) PreferenceOption {
	return func(s *PreferenceService) { s.presenter = p }
}

func NewPreferenceService(store client.DocumentStore, shadow *Shadow, logger logging.Logger, opts ...PreferenceOption) *PreferenceService {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &PreferenceService{
		store:    store,
		shadow:   shadow,
		cooldown: guard.DefaultCooldown,
		logger:   logger.With("module", "preferences"),
	}
	for _, o := range opts {
		o(s)
	}
	if s.guard == nil {
		s.guard = guard.New()
	}
	return s
}

// Start subscribes to the document of username. A subscription for another
// identity is torn down first; starting again for the live identity is a
// no-op. An empty username behaves like Stop and returns ErrNoIdentity.
func (s *PreferenceService) Start(ctx context.Context, username string) error {
	id := common.NormalizeUsername(username)
	if id == "" {
		s.Stop()
		return common.NewUpdateError(common.ReasonNoIdentity, nil)
	}

	s.mu.Lock()
	if s.identity == id && s.state != StateUnsubscribed {
		s.mu.Unlock()
		return nil
	}
	prev := s.unsubscribe
	s.generation++
	gen := s.generation
	s.identity = id
	s.displayName = strings.TrimSpace(username)
	s.user = User{}
	s.cache = prefs.Preferences{}
	s.state = StateLoading
	s.unsubscribe = nil
	s.mu.Unlock()

	if prev != nil {
		prev()
	}

	cancel, err := s.store.Subscribe(ctx, id,
		func(d *prefs.Document) { s.onSnapshot(ctx, gen, d) },
		func(err error) { s.onSubscriptionError(ctx, gen, err) },
	)
	if err != nil {
		s.mu.Lock()
		if s.generation == gen {
			// identity stays so updates keep working; Start may retry
			s.state = StateUnsubscribed
		}
		s.mu.Unlock()
		s.logger.Warn(ctx, "subscribe failed", "document", id, "error", err)
		return err
	}

	s.mu.Lock()
	if s.generation != gen {
		// stopped or restarted while subscribing
		s.mu.Unlock()
		cancel()
		return nil
	}
	s.unsubscribe = cancel
	s.mu.Unlock()

	s.logger.Debug(ctx, "subscribed", "document", id)
	return nil
}

// Stop tears the subscription down and empties the cache. Listeners are
// told once; later calls do nothing.
func (s *PreferenceService) Stop() {
	s.mu.Lock()
	if s.state == StateUnsubscribed && s.identity == "" {
		s.mu.Unlock()
		return
	}
	cancel := s.unsubscribe
	s.generation++
	s.identity = ""
	s.displayName = ""
	s.user = User{}
	s.cache = prefs.Preferences{}
	s.state = StateUnsubscribed
	s.unsubscribe = nil
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.guard.Reset()

	for _, l := range listeners {
		l(prefs.Preferences{})
	}
}

func (s *PreferenceService) onSnapshot(ctx context.Context, gen uint64, d *prefs.Document) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	if d == nil {
		s.cache = prefs.Preferences{}
		s.user = User{}
	} else {
		s.cache = d.Preferences.Clone()
		s.user = User{Username: d.Username, UsernameLC: d.UsernameLC, PetName: d.PetName, CreatedAt: d.CreatedAt}
	}
	s.state = StateLive
	snapshot := s.cache.Clone()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	if d != nil {
		s.mirrorCompanion(ctx, d.Preferences)
	}

	for _, l := range listeners {
		l(snapshot.Clone())
	}
}

func (s *PreferenceService) onSubscriptionError(ctx context.Context, gen uint64, err error) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	if s.state == StateLoading {
		s.state = StateLive
	}
	s.mu.Unlock()

	s.logger.Warn(ctx, "subscription error", "error", err)
}

// mirrorCompanion stores the companion a snapshot refers to in the shadow.
func (s *PreferenceService) mirrorCompanion(ctx context.Context, p prefs.Preferences) {
	if s.shadow == nil {
		return
	}
	c, ok := p.ResolvedCompanion()
	if !ok {
		return
	}
	if err := s.shadow.SaveCompanion(context.WithoutCancel(ctx), c); err != nil {
		s.logger.Warn(ctx, "shadow write failed", "error", err)
	}
}

// RestoreCompanion reads the shadow and hands the result to the presenter,
// if one is configured.
func (s *PreferenceService) RestoreCompanion(ctx context.Context) (prefs.Companion, bool) {
	if s.shadow == nil {
		return prefs.Companion{}, false
	}
	c, ok, err := s.shadow.LoadCompanion(ctx)
	if err != nil {
		s.logger.Warn(ctx, "shadow read failed", "error", err)
		return prefs.Companion{}, false
	}
	if ok && s.presenter != nil {
		s.presenter.PresentCompanion(c)
	}
	return c, ok
}

// OnChange registers fn to receive every new cache value.
func (s *PreferenceService) OnChange(fn func(prefs.Preferences)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Preferences returns a deep copy of the cache.
func (s *PreferenceService) Preferences() prefs.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Clone()
}

func (s *PreferenceService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateLoading
}

func (s *PreferenceService) State() SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Identity is the normalized username, empty when stopped.
func (s *PreferenceService) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *PreferenceService) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Update persists u. When the document exists the writes are applied in
// place; otherwise the document is created from the baseline of u. The
// cache only changes when the resulting snapshot arrives.
func (s *PreferenceService) Update(ctx context.Context, u prefs.Update) error {
	s.mu.RLock()
	id, name := s.identity, s.displayName
	if s.user.Username != "" {
		name = s.user.Username
	}
	s.mu.RUnlock()

	if id == "" {
		return common.NewUpdateError(common.ReasonNoIdentity, nil)
	}
	if len(u) == 0 {
		return nil
	}

	_, err := s.store.GetDocument(ctx, id)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		fields := map[string]any{
			"username":             name,
			"username_lc":          id,
			prefs.PreferencesField: prefs.Baseline(u),
		}
		err = s.store.CreateOrMergeDocument(ctx, id, fields)
	case err == nil:
		err = s.store.PartialUpdateDocument(ctx, id, prefs.BuildWrites(u))
	}

	if err != nil {
		s.logger.Warn(ctx, "preference update failed", "document", id, "error", err)
		return storeError(err)
	}
	return nil
}

// GuardedUpdate is Update behind the action guard: a second call with the
// same key inside cooldown returns ErrDuplicateIgnored without touching
// the store. A non-positive cooldown uses the configured one.
func (s *PreferenceService) GuardedUpdate(ctx context.Context, key string, u prefs.Update, cooldown time.Duration) error {
	if cooldown <= 0 {
		cooldown = s.cooldown
	}
	if !s.guard.ShouldProceed(key, cooldown) {
		s.logger.Debug(ctx, "duplicate action ignored", "key", key)
		return common.NewUpdateError(common.ReasonDuplicateIgnored, nil)
	}
	return s.Update(ctx, u)
}

// storeError classifies a store failure.
func storeError(err error) error {
	switch {
	case errors.Is(err, client.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return common.NewUpdateError(common.ReasonStoreUnreachable, err)
	}
	return common.NewUpdateError(common.ReasonUnknown, err)
}
