// Package resolve picks the concrete font family for a style descriptor.
//
// Resolution walks the descriptor's preferred fonts in priority order
// against an explicit snapshot of the installed families; the first exact
// (case-insensitive) match wins. When nothing matches, resolution falls back
// to the style's bundled metric-compatible font, and when that asset is
// unavailable too, to the compiled-in Go family. Missing fonts are never an
// error: the worst outcome is a visibly wrong but still renderable figure,
// reported through the resolution's warnings.
package resolve

import (
	"fmt"
	"strings"

	"github.com/matzehuels/scifont/pkg/fonts"
	"github.com/matzehuels/scifont/pkg/styles"
	"github.com/matzehuels/scifont/pkg/sysfonts"
)

// Source identifies where a resolved font family came from.
type Source string

const (
	// SourceSystem means a preferred font installed on the host matched.
	SourceSystem Source = "system"
	// SourceBundled means the style's bundled fallback font is in effect.
	SourceBundled Source = "bundled"
	// SourceDefault means even the bundled fallback was unavailable and the
	// compiled-in default family is in effect.
	SourceDefault Source = "default"
)

// Resolution is the outcome of resolving one style descriptor. It is created
// fresh per call and carries its diagnostics as data; the caller decides how
// to report them.
type Resolution struct {
	Family   string   // font family to configure
	Path     string   // font file backing a system match, empty otherwise
	Source   Source   // where the family came from
	Missing  []string // preferred fonts that were not installed
	Warnings []string // non-fatal diagnostics, empty on a clean system match
}

// AssetStore is the bundled font collection consulted for fallbacks.
// fonts.Assets is the production implementation.
type AssetStore interface {
	// Has reports whether the asset bytes for id are available.
	Has(id string) bool
	// Register makes the asset usable by the renderer. Idempotent.
	Register(id string) error
}

// Resolver resolves style descriptors against font snapshots.
// The zero value uses the real bundled assets and the Go default family.
type Resolver struct {
	Assets        AssetStore // nil means fonts.Assets{}
	DefaultFamily string     // empty means fonts.GoFont
}

// Resolve selects the font family for d given the installed families in
// snap. It never fails; see Resolution.Warnings for degradations.
func (r *Resolver) Resolve(d styles.Descriptor, snap sysfonts.Snapshot) Resolution {
	for _, want := range d.PreferredFonts {
		if e, ok := snap.Lookup(want); ok {
			return Resolution{Family: e.Name, Path: e.Path, Source: SourceSystem}
		}
	}

	res := Resolution{
		Missing: append([]string(nil), d.PreferredFonts...),
	}

	assets := r.Assets
	if assets == nil {
		assets = fonts.Assets{}
	}

	if !assets.Has(d.FallbackFontID) {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"preferred font(s) %s not installed and bundled %s is not available",
			quoteList(res.Missing), d.FallbackFontID))
	} else if err := assets.Register(d.FallbackFontID); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"preferred font(s) %s not installed and bundled %s failed to load: %v",
			quoteList(res.Missing), d.FallbackFontID, err))
	} else {
		res.Family = d.FallbackFontID
		res.Source = SourceBundled
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"preferred font(s) %s not installed; using bundled %s",
			quoteList(res.Missing), d.FallbackFontID))
		return res
	}

	// Last resort: the compiled-in default family. Registration of a
	// compiled-in font only fails on a corrupted build; fall through to the
	// name regardless, the renderer layer backs unknown families with a
	// stand-in face.
	family := r.DefaultFamily
	if family == "" {
		family = fonts.GoFont
	}
	if err := assets.Register(family); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"default family %s failed to register: %v", family, err))
	}
	res.Family = family
	res.Source = SourceDefault
	res.Warnings = append(res.Warnings, fmt.Sprintf(
		"falling back to default family %s; figure text will not match the %s style", family, d.ID))
	return res
}

// quoteList formats font names for diagnostics: "Arial", "Helvetica".
func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
