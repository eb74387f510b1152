package styles

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scifont/pkg/errors"
)

// presetFile is the TOML shape of a custom preset file.
//
//	[[preset]]
//	id = "pnas"
//	name = "PNAS"
//	family = "sans-serif"
//	preferred = ["Helvetica", "Arial"]
//	fallback = "Arimo"
//	dpi = 600
//
//	[preset.sizes]
//	base = 8
//	axis-label = 8
//	tick-label = 7
//	legend = 7
//	title = 9
//
//	[preset.cosmetics]
//	axis-line-width = 0.75
//	grid = true
type presetFile struct {
	Presets []presetTOML `toml:"preset"`
}

type presetTOML struct {
	ID        string        `toml:"id"`
	Name      string        `toml:"name"`
	Family    string        `toml:"family"`
	Preferred []string      `toml:"preferred"`
	Fallback  string        `toml:"fallback"`
	CJKProbe  bool          `toml:"cjk-probe"`
	DPI       int           `toml:"dpi"`
	Sizes     sizesTOML     `toml:"sizes"`
	Cosmetics cosmeticsTOML `toml:"cosmetics"`
}

type sizesTOML struct {
	Base      float64 `toml:"base"`
	AxisLabel float64 `toml:"axis-label"`
	TickLabel float64 `toml:"tick-label"`
	Legend    float64 `toml:"legend"`
	Title     float64 `toml:"title"`
}

type cosmeticsTOML struct {
	AxisLineWidth float64 `toml:"axis-line-width"`
	TickWidth     float64 `toml:"tick-width"`
	TickLength    float64 `toml:"tick-length"`
	LineWidth     float64 `toml:"line-width"`
	Grid          bool    `toml:"grid"`
	GridLineWidth float64 `toml:"grid-line-width"`
	GridAlpha     float64 `toml:"grid-alpha"`
	GridDashed    bool    `toml:"grid-dashed"`
}

// LoadTOML reads a preset file and returns a new registry containing the
// built-ins plus the file's presets. The receiver is not modified.
func (r *Registry) LoadTOML(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "read preset file %s", path)
	}
	return r.ParseTOML(data)
}

// ParseTOML decodes preset TOML data and returns a new registry containing
// the receiver's presets plus the decoded ones. Presets reusing an existing
// ID replace it, so files can also retune built-in styles.
func (r *Registry) ParseTOML(data []byte) (*Registry, error) {
	var file presetFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "decode preset TOML")
	}
	if len(file.Presets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPreset, "preset file contains no [[preset]] entries")
	}

	out := &Registry{presets: make(map[string]Descriptor, len(r.presets)+len(file.Presets))}
	for id, d := range r.presets {
		out.presets[id] = d
	}
	for _, p := range file.Presets {
		d := p.descriptor()
		if err := Validate(d); err != nil {
			return nil, err
		}
		out.presets[normalize(d.ID)] = d
	}
	return out, nil
}

// descriptor converts a decoded preset to a Descriptor, filling defaults:
// derived sizes fall back to the base size, cosmetics to thin publication
// strokes, DPI to 300.
func (p presetTOML) descriptor() Descriptor {
	d := Descriptor{
		ID:             normalize(p.ID),
		Name:           p.Name,
		FamilyClass:    FamilyClass(p.Family),
		PreferredFonts: p.Preferred,
		FallbackFontID: p.Fallback,
		CJKProbe:       p.CJKProbe,
		DPI:            p.DPI,
		Sizes: SizeSet{
			Base:      p.Sizes.Base,
			AxisLabel: p.Sizes.AxisLabel,
			TickLabel: p.Sizes.TickLabel,
			Legend:    p.Sizes.Legend,
			Title:     p.Sizes.Title,
		},
		Cosmetics: Cosmetics{
			AxisLineWidth: p.Cosmetics.AxisLineWidth,
			TickWidth:     p.Cosmetics.TickWidth,
			TickLength:    p.Cosmetics.TickLength,
			LineWidth:     p.Cosmetics.LineWidth,
			Grid:          p.Cosmetics.Grid,
			GridLineWidth: p.Cosmetics.GridLineWidth,
			GridAlpha:     p.Cosmetics.GridAlpha,
			GridDashed:    p.Cosmetics.GridDashed,
		},
	}
	if d.Name == "" {
		d.Name = p.ID
	}
	if d.FamilyClass == "" {
		d.FamilyClass = SansSerif
	}
	if d.FallbackFontID == "" {
		// Default fallback tracks the family class.
		if d.FamilyClass == Serif {
			d.FallbackFontID = "Tinos"
		} else {
			d.FallbackFontID = "Arimo"
		}
	}
	for _, s := range []*float64{&d.Sizes.AxisLabel, &d.Sizes.TickLabel, &d.Sizes.Legend, &d.Sizes.Title} {
		if *s == 0 {
			*s = d.Sizes.Base
		}
	}
	if d.Cosmetics.AxisLineWidth == 0 {
		d.Cosmetics.AxisLineWidth = 0.75
	}
	if d.Cosmetics.TickWidth == 0 {
		d.Cosmetics.TickWidth = d.Cosmetics.AxisLineWidth
	}
	if d.Cosmetics.TickLength == 0 {
		d.Cosmetics.TickLength = 3
	}
	if d.Cosmetics.LineWidth == 0 {
		d.Cosmetics.LineWidth = 1.0
	}
	if d.Cosmetics.GridLineWidth == 0 {
		d.Cosmetics.GridLineWidth = 0.5
	}
	if d.DPI == 0 {
		d.DPI = 300
	}
	return d
}
