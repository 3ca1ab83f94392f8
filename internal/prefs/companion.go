package prefs

import (
	"encoding/json"
	"fmt"
)

// Companion references the pet model a user picked. Older documents store
// only a model path string, newer ones an object; both decode into Companion.
type Companion struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	File string `json:"file,omitempty"`
	URL  string `json:"url,omitempty"`
}

func (c *Companion) UnmarshalJSON(b []byte) error {
	var path string
	if err := json.Unmarshal(b, &path); err == nil {
		*c = Companion{File: path}
		return nil
	}
	type plain Companion
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return fmt.Errorf("decode companion: %w", err)
	}
	*c = Companion(p)
	return nil
}

// Source is the location a renderer should load: the URL when present,
// otherwise the file path.
func (c Companion) Source() string {
	if c.URL != "" {
		return c.URL
	}
	return c.File
}

// IsZero reports whether c identifies nothing.
func (c Companion) IsZero() bool {
	return c == Companion{}
}

// ToMap renders c in the loose shape stored in documents.
func (c Companion) ToMap() map[string]any {
	m := map[string]any{}
	if c.ID != "" {
		m["id"] = c.ID
	}
	if c.Name != "" {
		m["name"] = c.Name
	}
	if c.File != "" {
		m["file"] = c.File
	}
	if c.URL != "" {
		m["url"] = c.URL
	}
	return m
}

// CompanionFromMap is the inverse of ToMap; unknown keys are ignored.
func CompanionFromMap(m map[string]any) Companion {
	str := func(k string) string {
		s, _ := m[k].(string)
		return s
	}
	return Companion{ID: str("id"), Name: str("name"), File: str("file"), URL: str("url")}
}

// ResolvedCompanion returns the companion a push refers to: the full model
// when present, otherwise a bare reference built from selectedPet.
func (p Preferences) ResolvedCompanion() (Companion, bool) {
	if p.CurrentModel != nil && !p.CurrentModel.IsZero() {
		return *p.CurrentModel, true
	}
	if p.SelectedPet != nil && *p.SelectedPet != "" {
		return Companion{ID: *p.SelectedPet}, true
	}
	return Companion{}, false
}
