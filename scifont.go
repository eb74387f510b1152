// Package scifont configures gonum/plot for publication-ready figures.
//
// Calling [Use] near the start of a program selects a journal or language
// preset, resolves a concrete font family for it (preferring installed
// system fonts, then bundled metric-compatible substitutes), and commits
// the resulting rendering configuration process-wide: default fonts, text
// sizes per category, axis cosmetics, and editable-text export flags for
// the vector formats.
//
//	if err := scifont.Use("nature"); err != nil {
//	    log.Fatal(err)
//	}
//	p := plot.New()
//	rc.StylePlot(p)
//	// ... draw and save with figio.Save
//
// Use mutates shared gonum/plot state and is meant to be called once before
// any figure is drawn; concurrent calls must be serialized by the caller.
// The only error Use returns is an unrecognized style identifier. Missing
// fonts never fail the call: resolution degrades through the bundled and
// compiled-in fallbacks and reports what happened through the logger.
package scifont

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scifont/pkg/cache"
	"github.com/matzehuels/scifont/pkg/errors"
	"github.com/matzehuels/scifont/pkg/fonts"
	"github.com/matzehuels/scifont/pkg/rc"
	"github.com/matzehuels/scifont/pkg/resolve"
	"github.com/matzehuels/scifont/pkg/styles"
	"github.com/matzehuels/scifont/pkg/sysfonts"
)

// Size override keys accepted by [WithSizes]. They match the size table
// keys of preset TOML files.
const (
	SizeBase      = "base"
	SizeAxisLabel = "axis-label"
	SizeTickLabel = "tick-label"
	SizeLegend    = "legend"
	SizeTitle     = "title"
)

// Option adjusts how Use resolves and applies a style.
type Option func(*options)

type options struct {
	registry *styles.Registry
	snapshot *sysfonts.Snapshot
	scanner  *sysfonts.Scanner
	assets   resolve.AssetStore
	logger   *log.Logger
	sizes    map[string]float64
	edits    []func(*rc.Config)
}

// WithRegistry resolves the style against a custom preset registry, for
// example one extended from a TOML preset file.
func WithRegistry(reg *styles.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithSnapshot resolves against an explicit font snapshot instead of
// scanning the host. Intended for tests and simulations.
func WithSnapshot(snap sysfonts.Snapshot) Option {
	return func(o *options) { o.snapshot = &snap }
}

// WithScanner uses a custom system font scanner (cache, logger, overrides).
func WithScanner(sc *sysfonts.Scanner) Option {
	return func(o *options) { o.scanner = sc }
}

// WithLogger routes resolution diagnostics to the given logger.
// Without it, diagnostics go to the charmbracelet default logger.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAssets overrides the bundled font asset store. Intended for tests.
func WithAssets(store resolve.AssetStore) Option {
	return func(o *options) { o.assets = store }
}

// WithBaseSize overrides the preset's base text size in points.
func WithBaseSize(pts float64) Option {
	return func(o *options) {
		o.edits = append(o.edits, func(c *rc.Config) { c.Sizes.Base = pts })
	}
}

// WithAxisLabelSize overrides the axis label size in points.
func WithAxisLabelSize(pts float64) Option {
	return func(o *options) {
		o.edits = append(o.edits, func(c *rc.Config) { c.Sizes.AxisLabel = pts })
	}
}

// WithTickLabelSize overrides the tick label size in points.
func WithTickLabelSize(pts float64) Option {
	return func(o *options) {
		o.edits = append(o.edits, func(c *rc.Config) { c.Sizes.TickLabel = pts })
	}
}

// WithLegendSize overrides the legend entry size in points.
func WithLegendSize(pts float64) Option {
	return func(o *options) {
		o.edits = append(o.edits, func(c *rc.Config) { c.Sizes.Legend = pts })
	}
}

// WithTitleSize overrides the title size in points.
func WithTitleSize(pts float64) Option {
	return func(o *options) {
		o.edits = append(o.edits, func(c *rc.Config) { c.Sizes.Title = pts })
	}
}

// WithDPI overrides the raster export resolution.
func WithDPI(dpi int) Option {
	return func(o *options) {
		o.edits = append(o.edits, func(c *rc.Config) { c.DPI = dpi })
	}
}

// WithSizes overrides several sizes at once, keyed by the Size* constants.
// Unknown keys or non-positive sizes fail the Use call before any
// configuration is touched.
func WithSizes(sizes map[string]float64) Option {
	return func(o *options) {
		if o.sizes == nil {
			o.sizes = make(map[string]float64, len(sizes))
		}
		for k, v := range sizes {
			o.sizes[k] = v
		}
	}
}

// Use applies the named publication style to the process-wide rendering
// configuration. Caller-supplied overrides are applied after the preset's
// defaults, so they always win. The configuration is staged and committed
// in one step: an invalid style or override leaves prior state untouched.
func Use(styleID string, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = log.Default()
	}

	reg := o.registry
	if reg == nil {
		reg = styles.Default()
	}
	d, err := reg.Lookup(styleID)
	if err != nil {
		return err
	}
	if err := validateSizes(o.sizes); err != nil {
		return err
	}

	snap, err := o.takeSnapshot(logger)
	if err != nil {
		// A failed scan is not fatal: resolve against an empty snapshot and
		// let the bundled fallbacks carry the style.
		logger.Warnf("system font scan failed: %v", err)
		snap = sysfonts.FromNames()
	}

	resolver := resolve.Resolver{Assets: o.assets}
	res := resolver.Resolve(d, snap)
	for _, w := range res.Warnings {
		logger.Warn(w)
	}

	cfg := rc.New(d, res)
	applySizeMap(&cfg, o.sizes)
	for _, edit := range o.edits {
		edit(&cfg)
	}

	ensureRenderable(&cfg, logger)
	rc.Commit(cfg)

	logger.Infof("applied %s style (%s/%s, %gpt base)",
		d.Name, cfg.Family, cfg.FamilyClass, cfg.Sizes.Base)
	return nil
}

// CurrentConfig returns the active configuration, if any style has been
// applied in this process.
func CurrentConfig() (rc.Config, bool) {
	return rc.Current()
}

// takeSnapshot returns the caller-injected snapshot or scans the host.
func (o *options) takeSnapshot(logger *log.Logger) (sysfonts.Snapshot, error) {
	if o.snapshot != nil {
		return *o.snapshot, nil
	}
	sc := o.scanner
	if sc == nil {
		sc = &sysfonts.Scanner{Cache: defaultCache(), Logger: logger}
	}
	return sc.Snapshot(context.Background())
}

// ensureRenderable guarantees the resolved family is drawable: system
// matches register their font file with the renderer, and anything that
// cannot be backed by real bytes gets the compiled-in stand-in face so a
// later plotting call cannot fail on a missing font.
func ensureRenderable(cfg *rc.Config, logger *log.Logger) {
	if fonts.Registered(cfg.Family) {
		return
	}
	if cfg.FontPath != "" {
		err := fonts.RegisterPath(cfg.Family, cfg.FontPath)
		if err == nil {
			return
		}
		logger.Warnf("could not load %s from %s: %v; substituting the %s face",
			cfg.Family, cfg.FontPath, err, fonts.GoFont)
	}
	if err := fonts.RegisterStandIn(cfg.Family); err != nil {
		// Parsing a compiled-in font cannot fail on a healthy build.
		logger.Errorf("stand-in registration for %s failed: %v", cfg.Family, err)
	}
}

func validateSizes(sizes map[string]float64) error {
	for key, v := range sizes {
		switch key {
		case SizeBase, SizeAxisLabel, SizeTickLabel, SizeLegend, SizeTitle:
		default:
			return errors.New(errors.ErrCodeInvalidSize, "unknown size parameter %q", key)
		}
		if v <= 0 {
			return errors.New(errors.ErrCodeInvalidSize, "size %q must be positive, got %g", key, v)
		}
	}
	return nil
}

func applySizeMap(cfg *rc.Config, sizes map[string]float64) {
	for key, v := range sizes {
		switch key {
		case SizeBase:
			cfg.Sizes.Base = v
		case SizeAxisLabel:
			cfg.Sizes.AxisLabel = v
		case SizeTickLabel:
			cfg.Sizes.TickLabel = v
		case SizeLegend:
			cfg.Sizes.Legend = v
		case SizeTitle:
			cfg.Sizes.Title = v
		}
	}
}

// defaultCache opens the scan cache under the shared per-user cache
// directory. Any failure disables persistence rather than failing the call.
func defaultCache() cache.Cache {
	dir, err := cache.DefaultDir("scifont")
	if err != nil {
		return cache.NewNullCache()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}
