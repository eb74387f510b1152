// Package cli implements the scifont command-line interface.
//
// This package provides commands for inspecting the built-in publication
// styles, resolving fonts against the host or a simulated font list,
// rendering preview figures, and managing the font scan cache. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scifont/pkg/buildinfo"
	"github.com/matzehuels/scifont/pkg/cache"
	"github.com/matzehuels/scifont/pkg/figio"
	"github.com/matzehuels/scifont/pkg/styles"
	"github.com/matzehuels/scifont/pkg/sysfonts"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "scifont"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Scifont configures publication-ready plot typography",
		Long:         `Scifont applies journal style presets (nature, cell, science, ieee, zh) to gonum/plot figures: it resolves a concrete font from the fonts installed on this machine, falls back to bundled substitutes, and keeps exported vector text editable.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.stylesCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Scanner Factory
// =============================================================================

// newScanner creates a system font scanner for CLI use.
func (c *CLI) newScanner(noCache bool) *sysfonts.Scanner {
	return &sysfonts.Scanner{Cache: newCache(noCache), Logger: c.Logger}
}

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/scifont/).
func cacheDir() (string, error) {
	return cache.DefaultDir(appName)
}

// =============================================================================
// Registry & Format Helpers
// =============================================================================

// loadRegistry returns the builtin registry, extended from a preset TOML
// file when one is given.
func loadRegistry(presetFile string) (*styles.Registry, error) {
	reg := styles.Default()
	if presetFile == "" {
		return reg, nil
	}
	return reg.LoadTOML(presetFile)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{figio.FormatSVG}
	}
	return strings.Split(s, ",")
}
