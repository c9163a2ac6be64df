package core

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrKeyIndex is returned when a SortSpec operation addresses a slot that does not exist.
	ErrKeyIndex = errors.New("sort key index out of range")

	// ErrInvalidSort is returned for sort keys or directions that cannot be parsed.
	ErrInvalidSort = errors.New("invalid sort")
)

// SortSpec is an ordered, immutable list of sort keys. Every operation
// returns a new SortSpec and leaves the receiver untouched.
type SortSpec struct {
	keys []SortKey
}

// NewSortSpec builds a spec from keys in precedence order.
func NewSortSpec(keys ...SortKey) SortSpec {
	return SortSpec{keys: slices.Clone(keys)}
}

// Keys returns a copy of the keys in precedence order.
func (s SortSpec) Keys() []SortKey { return slices.Clone(s.keys) }

// Len returns the number of keys.
func (s SortSpec) Len() int { return len(s.keys) }

// IsEmpty reports whether the spec has no keys.
func (s SortSpec) IsEmpty() bool { return len(s.keys) == 0 }

// At returns the key at index i.
func (s SortSpec) At(i int) (SortKey, bool) {
	if i < 0 || i >= len(s.keys) {
		return SortKey{}, false
	}
	return s.keys[i], true
}

// Add appends key as the lowest-precedence key.
func (s SortSpec) Add(key SortKey) SortSpec {
	keys := make([]SortKey, len(s.keys), len(s.keys)+1)
	copy(keys, s.keys)
	return SortSpec{keys: append(keys, key)}
}

// Remove drops the key at index i.
func (s SortSpec) Remove(i int) (SortSpec, error) {
	if i < 0 || i >= len(s.keys) {
		return s, fmt.Errorf("remove %d of %d: %w", i, len(s.keys), ErrKeyIndex)
	}
	return SortSpec{keys: slices.Delete(slices.Clone(s.keys), i, i+1)}, nil
}

// Update replaces the key at index i.
func (s SortSpec) Update(i int, key SortKey) (SortSpec, error) {
	if i < 0 || i >= len(s.keys) {
		return s, fmt.Errorf("update %d of %d: %w", i, len(s.keys), ErrKeyIndex)
	}
	keys := slices.Clone(s.keys)
	keys[i] = key
	return SortSpec{keys: keys}, nil
}

// Equal reports whether both specs hold the same keys in the same order.
func (s SortSpec) Equal(o SortSpec) bool {
	return slices.Equal(s.keys, o.keys)
}

func (s SortSpec) String() string {
	parts := make([]string, len(s.keys))
	for i, k := range s.keys {
		parts[i] = k.Column + " " + string(k.Dir)
	}
	return strings.Join(parts, ", ")
}

// ParseDirection accepts asc/ascending and desc/descending in any case.
// An empty string means ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", fmt.Errorf("%w direction %q", ErrInvalidSort, s)
}

// ParseSortKey parses "column" or "column:dir". The direction is taken from
// the last colon only when it names a direction, so column names may contain
// colons.
func ParseSortKey(s string) (SortKey, error) {
	col, dir := s, Ascending
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		if d, err := ParseDirection(s[i+1:]); err == nil {
			col, dir = s[:i], d
		}
	}
	if col == "" {
		return SortKey{}, fmt.Errorf("%w key %q: empty column", ErrInvalidSort, s)
	}
	return SortKey{Column: col, Dir: dir}, nil
}
