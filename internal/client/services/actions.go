package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/petzy/internal/client/client"
	"github.com/dmitrijs2005/petzy/internal/prefs"
	"github.com/dmitrijs2005/petzy/internal/stats"
)

const (
	actionTeleport = "teleport"
	actionSelect   = "select"
)

// metaFields names the last-value/timestamp pair written for each action.
var metaFields = map[prefs.ActionKind][2]string{
	prefs.ActionFeed:     {"lastFed", "lastFedAt"},
	prefs.ActionPlay:     {"lastPlayedGame", "lastPlayedAt"},
	prefs.ActionGroom:    {"lastGroomed", "lastGroomedAt"},
	prefs.ActionRest:     {"lastRested", "lastRestedAt"},
	prefs.ActionInteract: {"lastInteraction", "lastInteractionAt"},
}

// HistoryDay is one row of the trailing history.
type HistoryDay struct {
	Day    string
	Counts prefs.Counts
}

// ActionService turns pet care actions into preference updates.
type ActionService struct {
	prefs    *PreferenceService
	catalog  client.Catalog
	now      func() time.Time
	loc      *time.Location
	targets  stats.Targets
	formulas stats.Formulas
}

type ActionOption func(*ActionService)

func WithClock(now func() time.Time) ActionOption {
	return func(a *ActionService) { a.now = now }
}

// WithLocation sets the zone day keys are computed in.
func WithLocation(loc *time.Location) ActionOption {
	return func(a *ActionService) {
		if loc != nil {
			a.loc = loc
		}
	}
}

func WithTargets(t stats.Targets) ActionOption {
	return func(a *ActionService) { a.targets = t }
}

func WithFormulas(f stats.Formulas) ActionOption {
	return func(a *ActionService) { a.formulas = f }
}

func NewActionService(p *PreferenceService, catalog client.Catalog, opts ...ActionOption) *ActionService {
	a := &ActionService{
		prefs:    p,
		catalog:  catalog,
		now:      time.Now,
		loc:      time.Local,
		targets:  stats.DefaultTargets(),
		formulas: stats.DefaultFormulas(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *ActionService) clock() time.Time {
	return a.now().In(a.loc)
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Perform records one action of the given kind. The update bumps today's
// history and daily log counters, writes the last-action metadata and the
// stats projected from the cached counts plus this action.
func (a *ActionService) Perform(ctx context.Context, kind prefs.ActionKind, detail string) error {
	meta, ok := metaFields[kind]
	if !ok {
		return fmt.Errorf("unknown action %q", kind)
	}
	detail = strings.TrimSpace(detail)
	if detail == "" {
		detail = string(kind)
	}

	now := a.clock()
	today := stats.DayKey(now)
	cached := a.prefs.Preferences()

	u := a.countUpdate(cached, today, kind)
	u[meta[0]] = prefs.Set(detail)
	u[meta[1]] = prefs.Set(stamp(now))
	u["lastAction"] = prefs.Set(string(kind))
	u["lastActionAt"] = prefs.Set(stamp(now))
	u["stats"] = prefs.Set(a.project(cached, now, kind))

	return a.prefs.GuardedUpdate(ctx, string(kind), u, 0)
}

// RecordInteraction counts a lightweight interaction such as tapping the
// pet. It is not guarded and leaves stats alone; the count lands in both
// dailyLog and dailyHistory like any other action.
func (a *ActionService) RecordInteraction(ctx context.Context, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		label = string(prefs.ActionInteract)
	}
	now := a.clock()
	today := stats.DayKey(now)
	cached := a.prefs.Preferences()

	u := a.countUpdate(cached, today, prefs.ActionInteract)
	u["lastInteraction"] = prefs.Set(label)
	u["lastInteractionAt"] = prefs.Set(stamp(now))
	u["lastAction"] = prefs.Set(string(prefs.ActionInteract))
	u["lastActionAt"] = prefs.Set(stamp(now))

	return a.prefs.Update(ctx, u)
}

// Teleport moves the pet to another scene.
func (a *ActionService) Teleport(ctx context.Context, scene string) error {
	scene = strings.TrimSpace(scene)
	if scene == "" {
		return fmt.Errorf("empty scene")
	}
	now := a.clock()
	u := prefs.Update{
		"currentScene": prefs.Set(map[string]any{"name": scene}),
		"lastScene":    prefs.Set(scene),
		"lastSceneAt":  prefs.Set(stamp(now)),
		"lastAction":   prefs.Set(actionTeleport),
		"lastActionAt": prefs.Set(stamp(now)),
	}
	return a.prefs.GuardedUpdate(ctx, actionTeleport, u, 0)
}

// SelectCompanion resolves petID through the catalog and makes it the
// current model.
func (a *ActionService) SelectCompanion(ctx context.Context, petID string) (prefs.Companion, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return prefs.Companion{}, fmt.Errorf("empty companion id")
	}
	c, err := a.catalog.ResolveModelURL(ctx, petID)
	if err != nil {
		return prefs.Companion{}, fmt.Errorf("resolve companion %s: %w", petID, err)
	}
	if c.ID == "" {
		c.ID = petID
	}

	u := prefs.Update{
		"currentModel": prefs.Set(c.ToMap()),
		"selectedPet":  prefs.Set(c.ID),
	}
	if err := a.prefs.GuardedUpdate(ctx, actionSelect+":"+c.ID, u, 0); err != nil {
		return prefs.Companion{}, err
	}
	return c, nil
}

// Companions lists the catalog.
func (a *ActionService) Companions(ctx context.Context) ([]prefs.Companion, error) {
	return a.catalog.ListCompanions(ctx)
}

// Snapshot derives the stats of the cached preferences as of now.
func (a *ActionService) Snapshot() stats.View {
	return stats.Snapshot(a.prefs.Preferences(), a.clock(), a.targets, a.formulas)
}

// History returns the counts of the trailing days, oldest first, today
// included.
func (a *ActionService) History(days int) []HistoryDay {
	if days <= 0 {
		return nil
	}
	p := a.prefs.Preferences()
	now := a.clock()
	y, m, d := now.Date()

	out := make([]HistoryDay, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := stats.DayKey(time.Date(y, m, d-i, 12, 0, 0, 0, now.Location()))
		var c prefs.Counts
		if i == 0 {
			c = stats.TodayCounts(p, day)
		} else if h, ok := p.DailyHistory[day]; ok {
			c = h.Clone()
		} else {
			c = prefs.ZeroCounts()
		}
		out = append(out, HistoryDay{Day: day, Counts: c})
	}
	return out
}

func (a *ActionService) countUpdate(cached prefs.Preferences, today string, kind prefs.ActionKind) prefs.Update {
	u := prefs.Update{
		"dailyHistory": prefs.Nested{
			today: prefs.Nested{string(kind): prefs.Inc(1)},
		},
	}
	a.addDailyLog(u, cached, today, kind)
	return u
}

// addDailyLog bumps dailyLog for kind. A log that belongs to an earlier day
// is replaced by today's counts as far as they are known, plus this action.
func (a *ActionService) addDailyLog(u prefs.Update, cached prefs.Preferences, today string, kind prefs.ActionKind) {
	if cached.DailyLogDate == "" || cached.DailyLogDate == today {
		u["dailyLog"] = prefs.Nested{string(kind): prefs.Inc(1)}
	} else {
		fresh := stats.TodayCounts(cached, today)
		fresh[kind]++
		u["dailyLog"] = prefs.Set(countsMap(fresh))
	}
	u["dailyLogDate"] = prefs.Set(today)
}

// project computes the stats as they will be once kind is applied.
func (a *ActionService) project(cached prefs.Preferences, now time.Time, kind prefs.ActionKind) prefs.Stats {
	today := stats.DayKey(now)

	counts := stats.TodayCounts(cached, today)
	counts[kind]++

	next := cached.Clone()
	next.DailyLog = counts
	next.DailyLogDate = today
	if next.DailyHistory == nil {
		next.DailyHistory = map[string]prefs.Counts{}
	}
	h := next.DailyHistory[today].Clone()
	if h == nil {
		h = prefs.Counts{}
	}
	h[kind]++
	next.DailyHistory[today] = h

	s := stats.Derive(counts, a.targets, a.formulas, cached.StatsOrZero().XP, 1)
	s.StreakPercent = stats.Streak(next, now, a.targets)
	return s
}

func countsMap(c prefs.Counts) map[string]any {
	m := make(map[string]any, len(c))
	for k, v := range c {
		m[string(k)] = v
	}
	return m
}
