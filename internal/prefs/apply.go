package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyPath = errors.New("write path is empty")
	ErrNilDoc    = errors.New("document is nil")
)

// Apply executes writes against doc in order. Missing intermediate objects
// are created, and a non-object intermediate is replaced by an object. An
// increment on a missing or non-numeric leaf starts from 0.
func Apply(doc map[string]any, writes []Write) error {
	if doc == nil {
		return ErrNilDoc
	}
	for _, w := range writes {
		if err := ValidatePath(w.Path); err != nil {
			return err
		}
		parent := doc
		for _, seg := range w.Path[:len(w.Path)-1] {
			next, ok := parent[seg].(map[string]any)
			if !ok {
				next = map[string]any{}
				parent[seg] = next
			}
			parent = next
		}
		leaf := w.Path[len(w.Path)-1]
		switch w.Op {
		case OpIncrement:
			cur, _ := AsInt64(parent[leaf])
			parent[leaf] = cur + w.Delta
		case OpSet:
			parent[leaf] = cloneValue(w.Value)
		default:
			return fmt.Errorf("unknown write op %q", w.Op)
		}
	}
	return nil
}

// ValidatePath rejects empty paths and empty segments.
func ValidatePath(path []string) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	for i, seg := range path {
		if seg == "" {
			return fmt.Errorf("write path segment %d is empty", i)
		}
	}
	return nil
}

// MergeDeep merges src into dst: objects merge recursively, anything else in
// src replaces the value in dst. dst is modified and returned; a nil dst
// yields a new map.
func MergeDeep(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, sv := range src {
		if sm, ok := sv.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				dst[k] = MergeDeep(dm, sm)
				continue
			}
		}
		dst[k] = cloneValue(sv)
	}
	return dst
}

// AsInt64 converts the numeric shapes a decoded document may hold.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}

// ToMap converts any JSON-marshalable value into its generic object form.
func ToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = cloneValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = cloneValue(vv)
		}
		return out
	}
	return v
}
