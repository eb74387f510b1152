// Package styles defines the publication style registry.
//
// A style descriptor bundles everything one named preset controls: the font
// family class, the preference-ordered font candidates, the bundled fallback
// font, and the point sizes and axis cosmetics the journal expects. The
// registry is declarative data compiled into the binary; adding a journal
// preset is a data change, not a new code path.
//
// Custom presets can be layered on top from TOML files, see [Registry.LoadTOML].
package styles

import (
	"sort"
	"strings"

	"github.com/matzehuels/scifont/pkg/errors"
)

// FamilyClass is the generic font family category of a style.
type FamilyClass string

// Recognized family classes.
const (
	SansSerif FamilyClass = "sans-serif"
	Serif     FamilyClass = "serif"
)

// SizeSet holds the point sizes a style assigns to each text category.
type SizeSet struct {
	Base      float64 // default text size
	AxisLabel float64 // axis label size
	TickLabel float64 // tick label size
	Legend    float64 // legend entry size
	Title     float64 // figure title size
}

// Cosmetics holds the non-font visual defaults a style applies.
type Cosmetics struct {
	AxisLineWidth float64 // axis (spine) stroke width in points
	TickWidth     float64 // tick mark stroke width in points
	TickLength    float64 // tick mark length in points
	LineWidth     float64 // default data line width in points
	Grid          bool    // draw a background grid
	GridLineWidth float64 // grid stroke width in points
	GridAlpha     float64 // grid opacity (0..1)
	GridDashed    bool    // dashed grid lines
}

// Descriptor is one named publication preset. Descriptors are immutable
// values; the registry hands out copies.
type Descriptor struct {
	ID             string      // registry key, lower case ("nature", "ieee", ...)
	Name           string      // display name ("Nature", "IEEE", ...)
	FamilyClass    FamilyClass // sans-serif or serif
	PreferredFonts []string    // system font candidates, priority order
	FallbackFontID string      // bundled asset used when no candidate is installed
	CJKProbe       bool        // preferred list is a script-coverage probe
	Sizes          SizeSet
	Cosmetics      Cosmetics
	DPI            int // raster export resolution
}

// Built-in presets. Sizes follow the journals' figure preparation guidelines;
// the CJK probe list is ordered macOS, Windows, then common Linux families.
var builtins = []Descriptor{
	{
		ID:             "nature",
		Name:           "Nature",
		FamilyClass:    SansSerif,
		PreferredFonts: []string{"Arial", "Helvetica"},
		FallbackFontID: "Arimo",
		Sizes:          SizeSet{Base: 7, AxisLabel: 7, TickLabel: 6, Legend: 6, Title: 7},
		Cosmetics: Cosmetics{
			AxisLineWidth: 0.5,
			TickWidth:     0.5,
			TickLength:    2.5,
			LineWidth:     1.0,
			GridLineWidth: 0.5,
		},
		DPI: 300,
	},
	{
		ID:             "cell",
		Name:           "Cell",
		FamilyClass:    SansSerif,
		PreferredFonts: []string{"Arial", "Helvetica"},
		FallbackFontID: "Arimo",
		Sizes:          SizeSet{Base: 8, AxisLabel: 8, TickLabel: 7, Legend: 7, Title: 8},
		Cosmetics: Cosmetics{
			AxisLineWidth: 1.0,
			TickWidth:     1.0,
			TickLength:    3,
			LineWidth:     1.0,
			GridLineWidth: 0.5,
		},
		DPI: 300,
	},
	{
		ID:             "science",
		Name:           "Science",
		FamilyClass:    SansSerif,
		PreferredFonts: []string{"Arial", "Helvetica"},
		FallbackFontID: "Arimo",
		Sizes:          SizeSet{Base: 8, AxisLabel: 9, TickLabel: 8, Legend: 8, Title: 9},
		Cosmetics: Cosmetics{
			AxisLineWidth: 0.75,
			TickWidth:     0.75,
			TickLength:    3,
			LineWidth:     1.0,
			GridLineWidth: 0.5,
		},
		DPI: 300,
	},
	{
		ID:             "ieee",
		Name:           "IEEE",
		FamilyClass:    Serif,
		PreferredFonts: []string{"Times New Roman", "Times"},
		FallbackFontID: "Tinos",
		Sizes:          SizeSet{Base: 8, AxisLabel: 8, TickLabel: 8, Legend: 8, Title: 8},
		Cosmetics: Cosmetics{
			AxisLineWidth: 0.75,
			TickWidth:     0.75,
			TickLength:    3,
			LineWidth:     1.0,
			Grid:          true,
			GridLineWidth: 0.5,
			GridAlpha:     0.4,
			GridDashed:    true,
		},
		DPI: 300,
	},
	{
		ID:          "zh",
		Name:        "Chinese (Simplified)",
		FamilyClass: SansSerif,
		PreferredFonts: []string{
			"PingFang SC",
			"Hiragino Sans GB",
			"Microsoft YaHei",
			"Source Han Sans SC",
			"Noto Sans CJK SC",
			"WenQuanYi Micro Hei",
			"SimHei",
		},
		FallbackFontID: "Noto Sans SC",
		CJKProbe:       true,
		Sizes:          SizeSet{Base: 8, AxisLabel: 8, TickLabel: 7, Legend: 7, Title: 9},
		Cosmetics: Cosmetics{
			AxisLineWidth: 0.75,
			TickWidth:     0.75,
			TickLength:    3,
			LineWidth:     1.0,
			GridLineWidth: 0.5,
		},
		DPI: 300,
	},
}

// Registry maps style identifiers to descriptors. The zero value is not
// usable; construct with [Default] or [New].
type Registry struct {
	presets map[string]Descriptor
}

// Default returns a registry containing only the built-in presets.
func Default() *Registry {
	r := &Registry{presets: make(map[string]Descriptor, len(builtins))}
	for _, d := range builtins {
		r.presets[d.ID] = d
	}
	return r
}

// New returns a registry with the built-in presets plus the given extras.
// Extras with an ID matching a built-in replace it.
func New(extras ...Descriptor) (*Registry, error) {
	r := Default()
	for _, d := range extras {
		if err := Validate(d); err != nil {
			return nil, err
		}
		r.presets[normalize(d.ID)] = d
	}
	return r, nil
}

// Lookup returns the descriptor for id. Matching is case-insensitive and
// ignores surrounding whitespace. Unknown identifiers return an
// errors.ErrCodeInvalidStyle error naming the input and the valid choices.
func (r *Registry) Lookup(id string) (Descriptor, error) {
	d, ok := r.presets[normalize(id)]
	if !ok {
		return Descriptor{}, errors.New(errors.ErrCodeInvalidStyle,
			"unknown style %q (valid styles: %s)", id, strings.Join(r.IDs(), ", "))
	}
	return d.clone(), nil
}

// clone returns a copy that shares no mutable state with the registry.
func (d Descriptor) clone() Descriptor {
	d.PreferredFonts = append([]string(nil), d.PreferredFonts...)
	return d
}

// Has reports whether id names a registered preset.
func (r *Registry) Has(id string) bool {
	_, ok := r.presets[normalize(id)]
	return ok
}

// IDs returns the registered style identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.presets))
	for id := range r.presets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Descriptors returns all registered descriptors sorted by ID.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.presets))
	for _, id := range r.IDs() {
		out = append(out, r.presets[id].clone())
	}
	return out
}

// Validate checks that a descriptor is internally consistent.
func Validate(d Descriptor) error {
	if normalize(d.ID) == "" {
		return errors.New(errors.ErrCodeInvalidPreset, "preset ID cannot be empty")
	}
	if d.FamilyClass != SansSerif && d.FamilyClass != Serif {
		return errors.New(errors.ErrCodeInvalidPreset,
			"preset %q: family class must be %q or %q, got %q", d.ID, SansSerif, Serif, d.FamilyClass)
	}
	if len(d.PreferredFonts) == 0 {
		return errors.New(errors.ErrCodeInvalidPreset, "preset %q: preferred font list cannot be empty", d.ID)
	}
	seen := make(map[string]bool, len(d.PreferredFonts))
	for _, f := range d.PreferredFonts {
		key := strings.ToLower(strings.TrimSpace(f))
		if key == "" {
			return errors.New(errors.ErrCodeInvalidPreset, "preset %q: empty preferred font name", d.ID)
		}
		if seen[key] {
			return errors.New(errors.ErrCodeInvalidPreset, "preset %q: duplicate preferred font %q", d.ID, f)
		}
		seen[key] = true
	}
	if d.FallbackFontID == "" {
		return errors.New(errors.ErrCodeInvalidPreset, "preset %q: fallback font ID cannot be empty", d.ID)
	}
	for name, size := range map[string]float64{
		"base":       d.Sizes.Base,
		"axis-label": d.Sizes.AxisLabel,
		"tick-label": d.Sizes.TickLabel,
		"legend":     d.Sizes.Legend,
		"title":      d.Sizes.Title,
	} {
		if size <= 0 {
			return errors.New(errors.ErrCodeInvalidSize, "preset %q: %s size must be positive, got %g", d.ID, name, size)
		}
	}
	return nil
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
