// Package rc owns the process-wide rendering configuration scifont writes.
//
// A [Config] is a staging structure holding every field this system
// controls: the resolved font family, the per-category point sizes, the axis
// cosmetics, and the vector-export text flags. [Commit] publishes a staged
// config in one step, so callers never observe a partially-applied style.
// Committing writes the gonum/plot globals (plot.DefaultFont,
// plotter.DefaultFont, plotter.DefaultFontSize, plotter.DefaultLineStyle)
// and records the config for [StylePlot] and the figio export path, which
// handle the fields gonum/plot does not expose globally.
//
// The underlying plot globals are not designed for concurrent mutation;
// callers using multiple goroutines must serialize their Use calls.
package rc

import (
	"image/color"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/scifont/pkg/errors"
	"github.com/matzehuels/scifont/pkg/resolve"
	"github.com/matzehuels/scifont/pkg/styles"
)

// Config is the full set of rendering fields scifont owns. Create one with
// [New], adjust it, then [Commit] it.
type Config struct {
	Style     string         // style identifier the config came from
	StyleName string         // display name of the style
	Family    string         // resolved font family
	Source    resolve.Source // where the family came from

	FamilyClass styles.FamilyClass
	Sizes       styles.SizeSet
	Cosmetics   styles.Cosmetics
	DPI         int // raster export resolution

	// PDFEmbedFonts keeps exported PDF/EPS text as embedded font glyphs so
	// it stays editable in vector editors instead of being outlined.
	PDFEmbedFonts bool
	// SVGNativeText keeps exported SVG text as native <text> elements.
	// Path-flattening of SVG text is unsupported; the flag is recorded so
	// callers can assert the export contract.
	SVGNativeText bool

	// FontPath is the file backing a system-resolved family, used to
	// register the face with the renderer. Empty for bundled fonts (those
	// register through their asset store) and synthetic snapshots.
	FontPath string
}

// New stages a config from a style descriptor and its resolution, with the
// editable-text export flags on and every owned field populated.
func New(d styles.Descriptor, res resolve.Resolution) Config {
	return Config{
		Style:         d.ID,
		StyleName:     d.Name,
		Family:        res.Family,
		Source:        res.Source,
		FamilyClass:   d.FamilyClass,
		Sizes:         d.Sizes,
		Cosmetics:     d.Cosmetics,
		DPI:           d.DPI,
		PDFEmbedFonts: true,
		SVGNativeText: true,
		FontPath:      res.Path,
	}
}

var (
	mu      sync.RWMutex
	current Config
	applied bool

	// Original gonum/plot defaults, restored by Reset.
	origPlotFont     = plot.DefaultFont
	origPlotterFont  = plotter.DefaultFont
	origPlotterSize  = plotter.DefaultFontSize
	origPlotterWidth = plotter.DefaultLineStyle.Width
)

// family converts the configured family name to a gonum/plot font. Typefaces
// not present in the font cache fall back to the cache's default face at draw
// time, so a committed family can never crash a plotting call.
func (c Config) family() font.Font {
	return font.Font{Typeface: font.Typeface(c.Family)}
}

// sized returns the configured family at a point size.
func (c Config) sized(pts float64) font.Font {
	f := c.family()
	f.Size = vg.Points(pts)
	return f
}

// Commit publishes cfg as the process-wide configuration in one step. Every
// field scifont owns is overwritten; nothing merges with a previous commit.
// Committing the same config twice is a no-op in effect.
func Commit(cfg Config) {
	mu.Lock()
	defer mu.Unlock()

	plot.DefaultFont = cfg.family()
	plotter.DefaultFont = cfg.family()
	plotter.DefaultFontSize = vg.Points(cfg.Sizes.Base)
	plotter.DefaultLineStyle.Width = vg.Points(cfg.Cosmetics.LineWidth)

	current = cfg
	applied = true
}

// Current returns the committed configuration. The bool reports whether a
// commit has happened in this process.
func Current() (Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return current, applied
}

// Reset restores the gonum/plot defaults and clears the committed config.
// Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	plot.DefaultFont = origPlotFont
	plotter.DefaultFont = origPlotterFont
	plotter.DefaultFontSize = origPlotterSize
	plotter.DefaultLineStyle.Width = origPlotterWidth

	current = Config{}
	applied = false
}

// StylePlot applies the committed style to one figure: fonts and sizes for
// the title, axis labels, tick labels and legend, the axis and tick stroke
// cosmetics, and the style's grid. gonum/plot keeps these per plot, so this
// runs once per figure after plot.New.
func StylePlot(p *plot.Plot) error {
	cfg, ok := Current()
	if !ok {
		return errors.New(errors.ErrCodeInternal, "no style committed; call Use before styling plots")
	}
	ApplyTo(p, cfg)
	return nil
}

// ApplyTo styles one figure from an explicit config. Font lookup happens at
// draw time through the renderer's font cache, which substitutes its default
// face for unknown typefaces, so applying a style cannot fail.
func ApplyTo(p *plot.Plot, cfg Config) {
	p.Title.TextStyle.Font = cfg.sized(cfg.Sizes.Title)
	p.X.Label.TextStyle.Font = cfg.sized(cfg.Sizes.AxisLabel)
	p.Y.Label.TextStyle.Font = cfg.sized(cfg.Sizes.AxisLabel)
	p.X.Tick.Label.Font = cfg.sized(cfg.Sizes.TickLabel)
	p.Y.Tick.Label.Font = cfg.sized(cfg.Sizes.TickLabel)
	p.Legend.TextStyle.Font = cfg.sized(cfg.Sizes.Legend)

	axisWidth := vg.Points(cfg.Cosmetics.AxisLineWidth)
	tickWidth := vg.Points(cfg.Cosmetics.TickWidth)
	p.X.LineStyle.Width = axisWidth
	p.Y.LineStyle.Width = axisWidth
	p.X.Tick.LineStyle.Width = tickWidth
	p.Y.Tick.LineStyle.Width = tickWidth
	p.X.Tick.Length = vg.Points(cfg.Cosmetics.TickLength)
	p.Y.Tick.Length = vg.Points(cfg.Cosmetics.TickLength)

	if cfg.Cosmetics.Grid {
		p.Add(newGrid(cfg.Cosmetics))
	}
}

// newGrid builds the style's background grid.
func newGrid(c styles.Cosmetics) *plotter.Grid {
	g := plotter.NewGrid()
	alpha := c.GridAlpha
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	gray := color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: uint8(alpha * 0xff)}
	line := g.Vertical
	line.Color = gray
	line.Width = vg.Points(c.GridLineWidth)
	if c.GridDashed {
		line.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	}
	g.Vertical = line
	g.Horizontal = line
	return g
}
