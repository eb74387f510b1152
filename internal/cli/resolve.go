package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scifont/pkg/resolve"
	"github.com/matzehuels/scifont/pkg/styles"
	"github.com/matzehuels/scifont/pkg/sysfonts"
)

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		presetFile string
		fontsStr   string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <style>",
		Short: "Show which font a style resolves to on this machine",
		Long: `Show which font a style resolves to on this machine.

The style's preferred fonts are checked against the installed system fonts
in order; the first match wins. When none is installed the bundled
substitute takes over, and as a last resort the compiled-in Go face.

Use --fonts to simulate a host with a specific font list instead of
scanning this machine.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(presetFile)
			if err != nil {
				return err
			}
			d, err := reg.Lookup(args[0])
			if err != nil {
				return err
			}

			snap, err := c.snapshot(cmd.Context(), fontsStr, noCache)
			if err != nil {
				return err
			}

			resolver := resolve.Resolver{}
			res := resolver.Resolve(d, snap)

			printKeyValue("style", fmt.Sprintf("%s (%s)", d.Name, d.ID))
			printResolution(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&presetFile, "presets", "", "TOML file with additional style presets")
	cmd.Flags().StringVar(&fontsStr, "fonts", "", "simulate installed fonts (comma-separated family names)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the font scan cache")

	return cmd
}

// snapshot returns a simulated snapshot when fontsStr is set, otherwise
// scans the host with a spinner.
func (c *CLI) snapshot(ctx context.Context, fontsStr string, noCache bool) (sysfonts.Snapshot, error) {
	if fontsStr != "" {
		names := strings.Split(fontsStr, ",")
		for i, n := range names {
			names[i] = strings.TrimSpace(n)
		}
		return sysfonts.FromNames(names...), nil
	}

	spinner := newSpinnerWithContext(ctx, "Scanning installed fonts...")
	spinner.Start()
	snap, err := c.newScanner(noCache).Snapshot(ctx)
	if err != nil {
		spinner.StopWithError("Font scan failed")
		return sysfonts.Snapshot{}, err
	}
	spinner.Stop()
	return snap, nil
}

// lookupStyle resolves a style argument against the registry, used by
// commands that take a style ID.
func lookupStyle(presetFile, id string) (styles.Descriptor, error) {
	reg, err := loadRegistry(presetFile)
	if err != nil {
		return styles.Descriptor{}, err
	}
	return reg.Lookup(id)
}
