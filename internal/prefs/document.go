// Package prefs models the synchronized per-user preferences document and
// the update protocol used to change it.
//
// The document is owned by the remote store. Clients describe changes as an
// Update (literal values and atomic increments, see Value and Nested), the
// protocol turns that into store Writes, and the store applies them with
// Apply or MergeDeep. Nothing in this package performs I/O.
package prefs

import (
	"encoding/json"
	"fmt"
	"time"
)

// ActionKind is a countable pet care action.
type ActionKind string

const (
	ActionFeed     ActionKind = "feed"
	ActionPlay     ActionKind = "play"
	ActionGroom    ActionKind = "groom"
	ActionRest     ActionKind = "rest"
	ActionInteract ActionKind = "interact"
)

// ActionKinds lists every countable action in display order.
var ActionKinds = []ActionKind{ActionFeed, ActionPlay, ActionGroom, ActionRest, ActionInteract}

// ParseActionKind validates s as an action kind.
func ParseActionKind(s string) (ActionKind, bool) {
	for _, k := range ActionKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Counts maps an action kind to how many times it happened on one day.
type Counts map[ActionKind]int64

// ZeroCounts returns a Counts with every known kind present and set to 0.
func ZeroCounts() Counts {
	c := make(Counts, len(ActionKinds))
	for _, k := range ActionKinds {
		c[k] = 0
	}
	return c
}

// Get returns the count for k, treating missing and negative values as 0.
func (c Counts) Get(k ActionKind) int64 {
	if v := c[k]; v > 0 {
		return v
	}
	return 0
}

// Total sums every count.
func (c Counts) Total() int64 {
	var sum int64
	for k := range c {
		sum += c.Get(k)
	}
	return sum
}

func (c Counts) Clone() Counts {
	if c == nil {
		return nil
	}
	out := make(Counts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Stats is the derived, percentage based projection shown in the UI. Every
// field lies in [0,100]. It is cached in the document but always recomputable
// from raw counts.
type Stats struct {
	Hunger        int `json:"hunger"`
	Happiness     int `json:"happiness"`
	Energy        int `json:"energy"`
	Love          int `json:"love"`
	XP            int `json:"xp"`
	StreakPercent int `json:"streakPercent"`
}

// Preferences is the `preferences` sub-object of a user document.
type Preferences struct {
	DailyLog     Counts            `json:"dailyLog,omitempty"`
	DailyLogDate string            `json:"dailyLogDate,omitempty"`
	DailyHistory map[string]Counts `json:"dailyHistory,omitempty"`
	Stats        *Stats            `json:"stats,omitempty"`

	LastAction        string `json:"lastAction,omitempty"`
	LastActionAt      string `json:"lastActionAt,omitempty"`
	LastFed           string `json:"lastFed,omitempty"`
	LastFedAt         string `json:"lastFedAt,omitempty"`
	LastPlayedGame    string `json:"lastPlayedGame,omitempty"`
	LastPlayedAt      string `json:"lastPlayedAt,omitempty"`
	LastGroomed       string `json:"lastGroomed,omitempty"`
	LastGroomedAt     string `json:"lastGroomedAt,omitempty"`
	LastRested        string `json:"lastRested,omitempty"`
	LastRestedAt      string `json:"lastRestedAt,omitempty"`
	LastInteraction   string `json:"lastInteraction,omitempty"`
	LastInteractionAt string `json:"lastInteractionAt,omitempty"`
	LastScene         string `json:"lastScene,omitempty"`
	LastSceneAt       string `json:"lastSceneAt,omitempty"`

	Meshes       json.RawMessage `json:"meshes,omitempty"`
	CurrentScene json.RawMessage `json:"currentScene,omitempty"`
	CurrentModel *Companion      `json:"currentModel,omitempty"`
	SelectedPet  *string         `json:"selectedPet,omitempty"`
}

// IsZero reports whether p carries no data at all, which is the state of the
// client cache before the first snapshot and after logout.
func (p Preferences) IsZero() bool {
	b, err := json.Marshal(p)
	return err == nil && string(b) == "{}"
}

// Clone returns a deep copy so readers can never alias the cache.
func (p Preferences) Clone() Preferences {
	out := p
	out.DailyLog = p.DailyLog.Clone()
	if p.DailyHistory != nil {
		out.DailyHistory = make(map[string]Counts, len(p.DailyHistory))
		for day, c := range p.DailyHistory {
			out.DailyHistory[day] = c.Clone()
		}
	}
	if p.Stats != nil {
		s := *p.Stats
		out.Stats = &s
	}
	out.Meshes = cloneRaw(p.Meshes)
	out.CurrentScene = cloneRaw(p.CurrentScene)
	if p.CurrentModel != nil {
		m := *p.CurrentModel
		out.CurrentModel = &m
	}
	if p.SelectedPet != nil {
		id := *p.SelectedPet
		out.SelectedPet = &id
	}
	return out
}

// StatsOrZero returns the cached stats, or zero stats when none are stored.
func (p Preferences) StatsOrZero() Stats {
	if p.Stats == nil {
		return Stats{}
	}
	return *p.Stats
}

func cloneRaw(r json.RawMessage) json.RawMessage {
	if r == nil {
		return nil
	}
	return append(json.RawMessage(nil), r...)
}

// Document is the remote store record keyed by the normalized username.
type Document struct {
	Username    string      `json:"username"`
	UsernameLC  string      `json:"username_lc"`
	PetName     string      `json:"petName,omitempty"`
	CreatedAt   string      `json:"createdAt,omitempty"`
	Preferences Preferences `json:"preferences"`
}

// DecodeDocument parses a stored document body.
func DecodeDocument(body []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &d, nil
}

// DefaultPreferences is the zero state written when a user is created.
func DefaultPreferences() Preferences {
	return Preferences{
		DailyLog:     ZeroCounts(),
		DailyHistory: map[string]Counts{},
		Stats:        &Stats{Energy: 100},
		Meshes:       json.RawMessage(`[]`),
	}
}

// NewDocument builds the initial document for a freshly registered user.
func NewDocument(username, usernameLC, petName string, now time.Time) Document {
	return Document{
		Username:    username,
		UsernameLC:  usernameLC,
		PetName:     petName,
		CreatedAt:   now.UTC().Format(time.RFC3339),
		Preferences: DefaultPreferences(),
	}
}
