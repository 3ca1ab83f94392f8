// Package stats derives the percentage based pet stats and the 30 day streak
// from raw daily counters. All functions are pure; "today" is always passed
// in by the caller and never cached.
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/petzy/internal/prefs"
)

const (
	DayKeyLayout = "2006-01-02"
	StreakDays   = 30
)

// DayKey formats t as a calendar date in t's own location.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// Targets are the daily counts required for full hunger/happiness and for a
// day to count towards the streak.
type Targets struct {
	Feed int64 `json:"feed"`
	Play int64 `json:"play"`
}

func DefaultTargets() Targets {
	return Targets{Feed: 3, Play: 3}
}

// Met reports whether c reaches both targets.
func (t Targets) Met(c prefs.Counts) bool {
	return c.Get(prefs.ActionFeed) >= t.Feed && c.Get(prefs.ActionPlay) >= t.Play
}

type EnergyFormula string

const (
	// EnergyRestorative starts at 50 and rises with interaction and rest.
	EnergyRestorative EnergyFormula = "restorative"
	// EnergyFatigue starts at 100 and drops with play.
	EnergyFatigue EnergyFormula = "fatigue"
)

type LoveFormula string

const (
	LoveFromInteract LoveFormula = "interact"
	LoveFromGroom    LoveFormula = "groom"
)

type XPFormula string

const (
	// XPDaily is recomputed from the day's counts.
	XPDaily XPFormula = "daily"
	// XPAccumulated adds to the previously stored value.
	XPAccumulated XPFormula = "accumulated"
)

// Formulas selects one variant per disputed stat.
type Formulas struct {
	Energy EnergyFormula `json:"energy"`
	Love   LoveFormula   `json:"love"`
	XP     XPFormula     `json:"xp"`
}

const (
	FormulaSetDisplay = "display"
	FormulaSetAction  = "action"
)

// DefaultFormulas is the canonical set: every stat is a function of the
// day's counts only.
func DefaultFormulas() Formulas {
	return Formulas{Energy: EnergyRestorative, Love: LoveFromInteract, XP: XPDaily}
}

// ParseFormulaSet maps a configured set name to formulas.
func ParseFormulaSet(name string) (Formulas, error) {
	switch name {
	case "", FormulaSetDisplay:
		return DefaultFormulas(), nil
	case FormulaSetAction:
		return Formulas{Energy: EnergyFatigue, Love: LoveFromGroom, XP: XPAccumulated}, nil
	}
	return Formulas{}, fmt.Errorf("unknown formula set %q", name)
}

// Clamp limits v to [0,100].
func Clamp(v int64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(v)
}

// Percent is round(count/target*100) clamped; a non-positive target gives 0.
func Percent(count, target int64) int {
	if target <= 0 {
		return 0
	}
	return Clamp(int64(math.Round(float64(count) / float64(target) * 100)))
}

func Hunger(c prefs.Counts, t Targets) int { return Percent(c.Get(prefs.ActionFeed), t.Feed) }

func Happiness(c prefs.Counts, t Targets) int { return Percent(c.Get(prefs.ActionPlay), t.Play) }

func Energy(c prefs.Counts, f EnergyFormula) int {
	if f == EnergyFatigue {
		return Clamp(100 - c.Get(prefs.ActionPlay)*15 + c.Get(prefs.ActionFeed)*10 + c.Get(prefs.ActionRest)*20)
	}
	return Clamp(50 + c.Get(prefs.ActionInteract)*10 + c.Get(prefs.ActionRest)*5)
}

func Love(c prefs.Counts, f LoveFormula) int {
	if f == LoveFromGroom {
		return Clamp(c.Get(prefs.ActionGroom) * 15)
	}
	return Clamp(c.Get(prefs.ActionInteract) * 15)
}

// XP computes experience. prevXP and actions are only used by XPAccumulated.
func XP(c prefs.Counts, f XPFormula, prevXP int, actions int64) int {
	if f == XPAccumulated {
		return Clamp(int64(prevXP) + actions*10)
	}
	return Clamp(c.Total() * 10)
}

// Derive computes every count based stat. StreakPercent is left at 0; use
// Streak or Snapshot for it.
func Derive(c prefs.Counts, t Targets, f Formulas, prevXP int, actions int64) prefs.Stats {
	return prefs.Stats{
		Hunger:    Hunger(c, t),
		Happiness: Happiness(c, t),
		Energy:    Energy(c, f.Energy),
		Love:      Love(c, f.Love),
		XP:        XP(c, f.XP, prevXP, actions),
	}
}

// TodayCounts returns the counts for today. dailyHistory[today] only ever
// grows through increments, so it is the floor; a dailyLog that belongs to
// today (or carries no date) can only raise a kind above it.
func TodayCounts(p prefs.Preferences, today string) prefs.Counts {
	out := prefs.ZeroCounts()
	for k, v := range p.DailyHistory[today] {
		out[k] = v
	}
	if p.DailyLog != nil && (p.DailyLogDate == "" || p.DailyLogDate == today) {
		for k, v := range p.DailyLog {
			if v > out[k] {
				out[k] = v
			}
		}
	}
	return out
}

// Streak is the share of the trailing StreakDays calendar days, today
// included, that met both targets, as a rounded percentage.
func Streak(p prefs.Preferences, now time.Time, t Targets) int {
	today := DayKey(now)
	success := 0
	if t.Met(TodayCounts(p, today)) {
		success++
	}
	y, m, d := now.Date()
	for i := 1; i < StreakDays; i++ {
		day := DayKey(time.Date(y, m, d-i, 12, 0, 0, 0, now.Location()))
		if c, ok := p.DailyHistory[day]; ok && t.Met(c) {
			success++
		}
	}
	return Percent(int64(success), StreakDays)
}

// View is the full display projection for one moment.
type View struct {
	Day   string       `json:"day"`
	Today prefs.Counts `json:"today"`
	Stats prefs.Stats  `json:"stats"`
}

// Snapshot derives the display view of p at now. The accumulated XP variant
// reads the stored xp as is since no new actions are being applied.
func Snapshot(p prefs.Preferences, now time.Time, t Targets, f Formulas) View {
	day := DayKey(now)
	today := TodayCounts(p, day)
	s := Derive(today, t, f, p.StatsOrZero().XP, 0)
	s.StreakPercent = Streak(p, now, t)
	return View{Day: day, Today: today, Stats: s}
}
