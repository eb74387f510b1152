package sysfonts

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/sfnt"

	"github.com/matzehuels/scifont/pkg/cache"
)

// DefaultTTL is how long a cached scan stays valid. The cache key already
// fingerprints the font files, so the TTL is only a backstop.
const DefaultTTL = 30 * 24 * time.Hour

// Scanner builds snapshots of the host's installed font families.
// The zero value scans without caching; set Cache to persist results.
type Scanner struct {
	Cache  cache.Cache   // nil disables persistence
	TTL    time.Duration // cache lifetime, 0 means DefaultTTL
	Logger *log.Logger   // nil disables scan logging

	// List overrides font file discovery (defaults to findfont.List).
	List func() []string
	// Families overrides per-file family extraction (defaults to reading
	// the sfnt name table). Used by tests.
	Families func(path string) ([]string, error)
}

// Snapshot scans the host fonts, consulting the cache first. The returned
// error is non-nil only when ctx is cancelled; unreadable or unparsable font
// files are skipped, and cache failures degrade to a fresh scan.
func (sc *Scanner) Snapshot(ctx context.Context) (Snapshot, error) {
	paths := sc.listPaths()

	key := cache.Key("sysfonts", fingerprint(paths))
	if snap, ok := sc.fromCache(ctx, key); ok {
		sc.debugf("system font scan: cache hit (%d families)", snap.Len())
		return snap, nil
	}

	start := time.Now()
	var entries []Entry
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return Snapshot{}, err
		}
		families, err := sc.familiesOf(path)
		if err != nil {
			continue
		}
		for _, name := range families {
			entries = append(entries, Entry{Name: name, Path: path})
		}
	}
	snap := New(entries...)
	sc.debugf("system font scan: %d files, %d families (%s)",
		len(paths), snap.Len(), time.Since(start).Round(time.Millisecond))

	sc.toCache(ctx, key, snap)
	return snap, nil
}

// listPaths returns the candidate font file paths.
func (sc *Scanner) listPaths() []string {
	if sc.List != nil {
		return sc.List()
	}
	return findfont.List()
}

func (sc *Scanner) familiesOf(path string) ([]string, error) {
	if sc.Families != nil {
		return sc.Families(path)
	}
	return readFamilies(path)
}

// fileStat is the per-file part of the cache fingerprint.
type fileStat struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// fingerprint digests the font file list so the cache invalidates when fonts
// change. Stat failures record a zero size, which still perturbs the key.
func fingerprint(paths []string) []fileStat {
	stats := make([]fileStat, len(paths))
	for i, p := range paths {
		stats[i] = fileStat{Path: p}
		if info, err := os.Stat(p); err == nil {
			stats[i].Size = info.Size()
		}
	}
	return stats
}

func (sc *Scanner) fromCache(ctx context.Context, key string) (Snapshot, bool) {
	if sc.Cache == nil {
		return Snapshot{}, false
	}
	data, hit, err := sc.Cache.Get(ctx, key)
	if err != nil || !hit {
		return Snapshot{}, false
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return Snapshot{}, false
	}
	return New(entries...), true
}

func (sc *Scanner) toCache(ctx context.Context, key string, snap Snapshot) {
	if sc.Cache == nil {
		return
	}
	entries := make([]Entry, 0, snap.Len())
	for _, name := range snap.Names() {
		e, _ := snap.Lookup(name)
		entries = append(entries, e)
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	ttl := sc.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if err := sc.Cache.Set(ctx, key, data, ttl); err != nil {
		sc.debugf("system font scan: cache write failed: %v", err)
	}
}

func (sc *Scanner) debugf(format string, args ...any) {
	if sc.Logger != nil {
		sc.Logger.Debugf(format, args...)
	}
}

// ttcTag marks a TrueType collection file.
var ttcTag = []byte("ttcf")

// readFamilies extracts the family names recorded in a font file's name
// table. Collections contribute every member font. Both the legacy family
// (name ID 1) and the typographic family (name ID 16) are reported when they
// differ, since either may be what users know the font as.
func readFamilies(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fnts []*sfnt.Font
	if bytes.HasPrefix(data, ttcTag) {
		coll, err := sfnt.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		for i := 0; i < coll.NumFonts(); i++ {
			f, err := coll.Font(i)
			if err != nil {
				continue
			}
			fnts = append(fnts, f)
		}
	} else {
		f, err := sfnt.Parse(data)
		if err != nil {
			return nil, err
		}
		fnts = append(fnts, f)
	}

	var buf sfnt.Buffer
	var names []string
	seen := make(map[string]bool)
	for _, f := range fnts {
		for _, id := range []sfnt.NameID{sfnt.NameIDFamily, sfnt.NameIDTypographicFamily} {
			name, err := f.Name(&buf, id)
			if err != nil || name == "" {
				continue
			}
			if key := foldName(name); !seen[key] {
				seen[key] = true
				names = append(names, name)
			}
		}
	}
	return names, nil
}
