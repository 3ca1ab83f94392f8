package prefs

import (
	"sort"
	"strings"
)

// PreferencesField is the root segment every write path starts with.
const PreferencesField = "preferences"

// Field is an entry of an Update: either a Value leaf or a Nested object.
type Field interface {
	isField()
}

type valueKind uint8

const (
	kindLiteral valueKind = iota
	kindIncrement
)

// Value is a leaf of an Update. It is either a literal that replaces the
// stored value or an atomic increment applied by the store.
type Value struct {
	kind    valueKind
	literal any
	delta   int64
}

func (Value) isField() {}

// Literal wraps v as a replacing value.
func Literal(v any) Value { return Value{kind: kindLiteral, literal: v} }

// Increment asks the store to add n to the current number.
func Increment(n int64) Value { return Value{kind: kindIncrement, delta: n} }

// Set is shorthand for Literal.
func Set(v any) Value { return Literal(v) }

// Inc is shorthand for Increment.
func Inc(n int64) Value { return Increment(n) }

func (v Value) IsIncrement() bool { return v.kind == kindIncrement }

// Delta is the increment amount; 0 for literals.
func (v Value) Delta() int64 { return v.delta }

// Raw is the literal payload; nil for increments.
func (v Value) Raw() any { return v.literal }

// Nested is an object level of an Update. Depth is unbounded.
type Nested map[string]Field

func (Nested) isField() {}

// Update is a partial description of a preferences change keyed by top-level
// preference field name.
type Update map[string]Field

// OpKind tags a Write.
type OpKind string

const (
	OpSet       OpKind = "set"
	OpIncrement OpKind = "increment"
)

// Write is one store instruction: set or increment the value at Path.
type Write struct {
	Path  []string `json:"path"`
	Op    OpKind   `json:"op"`
	Value any      `json:"value,omitempty"`
	Delta int64    `json:"delta,omitempty"`
}

// PathString renders Path in dotted form for logs and metrics.
func (w Write) PathString() string { return strings.Join(w.Path, ".") }

// BuildWrites converts u into an ordered write set.
//
// A Nested field containing at least one increment anywhere below it is
// decomposed into one write per leaf so increments target their exact path
// and sibling leaves survive. A Nested field with no increments is written
// as a single literal object, replacing the stored one. Plain values
// produce one write each. Keys are visited in sorted order.
func BuildWrites(u Update) []Write {
	var writes []Write
	for _, key := range sortedKeys(u) {
		base := []string{PreferencesField, key}
		switch f := u[key].(type) {
		case Value:
			writes = append(writes, leafWrite(base, f))
		case Nested:
			if hasIncrement(f) {
				writes = appendLeaves(writes, base, f)
			} else {
				writes = append(writes, Write{Path: base, Op: OpSet, Value: materialize(f)})
			}
		}
	}
	return writes
}

// Baseline is the object used when the document does not exist yet: every
// increment becomes a literal equal to its amount, so +1 on an absent
// counter creates 1.
func Baseline(u Update) map[string]any {
	out := make(map[string]any, len(u))
	for k, f := range u {
		out[k] = materialize(f)
	}
	return out
}

// HasIncrement reports whether any leaf of u is an increment.
func (u Update) HasIncrement() bool {
	return hasIncrement(Nested(u))
}

// Merge returns a new Update combining u and other. Keys in other win,
// except that two Nested values are merged recursively.
func (u Update) Merge(other Update) Update {
	return Update(mergeNested(Nested(u), Nested(other)))
}

func mergeNested(a, b Nested) Nested {
	out := make(Nested, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if an, ok := out[k].(Nested); ok {
			if bn, ok := v.(Nested); ok {
				out[k] = mergeNested(an, bn)
				continue
			}
		}
		out[k] = v
	}
	return out
}

func leafWrite(path []string, v Value) Write {
	if v.IsIncrement() {
		return Write{Path: path, Op: OpIncrement, Delta: v.delta}
	}
	return Write{Path: path, Op: OpSet, Value: v.literal}
}

func appendLeaves(writes []Write, prefix []string, n Nested) []Write {
	for _, key := range sortedKeys(n) {
		path := append(append(make([]string, 0, len(prefix)+1), prefix...), key)
		switch f := n[key].(type) {
		case Value:
			writes = append(writes, leafWrite(path, f))
		case Nested:
			if len(f) == 0 {
				writes = append(writes, Write{Path: path, Op: OpSet, Value: map[string]any{}})
				continue
			}
			writes = appendLeaves(writes, path, f)
		}
	}
	return writes
}

func hasIncrement(n Nested) bool {
	for _, f := range n {
		switch v := f.(type) {
		case Value:
			if v.IsIncrement() {
				return true
			}
		case Nested:
			if hasIncrement(v) {
				return true
			}
		}
	}
	return false
}

func materialize(f Field) any {
	switch v := f.(type) {
	case Value:
		if v.IsIncrement() {
			return v.delta
		}
		return v.literal
	case Nested:
		m := make(map[string]any, len(v))
		for k, child := range v {
			m[k] = materialize(child)
		}
		return m
	}
	return nil
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
