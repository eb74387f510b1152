// Package sysfonts enumerates the font families installed on the host.
//
// A [Snapshot] is an explicit, immutable view of the available family names
// taken at one point in time. The resolver operates on snapshots rather than
// ambient global state, so resolution stays a pure function and tests can
// supply synthetic font sets with [FromNames].
//
// Building a real snapshot means walking the font paths reported by
// go-findfont and reading each file's family name from its sfnt name table.
// That is slow on hosts with large font libraries, so [Scanner] persists the
// result in a cache keyed by a digest of the font file paths and sizes; the
// entry invalidates itself when fonts are installed or removed.
package sysfonts

import (
	"sort"
	"strings"
)

// Entry is one discoverable font family.
type Entry struct {
	Name string `json:"name"` // family name from the font's name table
	Path string `json:"path"` // file the family was read from (empty for synthetic snapshots)
}

// Snapshot is an immutable set of font family names, matched
// case-insensitively by exact name.
type Snapshot struct {
	entries map[string]Entry
}

// New builds a snapshot from entries. Later duplicates of a family name are
// ignored; the first occurrence wins.
func New(entries ...Entry) Snapshot {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		key := foldName(e.Name)
		if key == "" {
			continue
		}
		if _, ok := m[key]; !ok {
			m[key] = e
		}
	}
	return Snapshot{entries: m}
}

// FromNames builds a synthetic snapshot containing the given family names.
// Intended for tests and for the CLI's --fonts simulation flag.
func FromNames(names ...string) Snapshot {
	entries := make([]Entry, len(names))
	for i, n := range names {
		entries[i] = Entry{Name: n}
	}
	return New(entries...)
}

// Contains reports whether the family name is present. Matching is
// case-insensitive and exact; no substring or "best match" logic.
func (s Snapshot) Contains(name string) bool {
	_, ok := s.entries[foldName(name)]
	return ok
}

// Lookup returns the entry for a family name, matched case-insensitively.
// The returned entry carries the family's canonical name as recorded in the
// font file, which may differ from the query in case.
func (s Snapshot) Lookup(name string) (Entry, bool) {
	e, ok := s.entries[foldName(name)]
	return e, ok
}

// Names returns the family names in sorted order.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of distinct families in the snapshot.
func (s Snapshot) Len() int {
	return len(s.entries)
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
