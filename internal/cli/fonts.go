package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scifont/pkg/fonts"
)

// fontsCommand creates the fonts inspection command.
func (c *CLI) fontsCommand() *cobra.Command {
	var (
		noCache bool
		bundled bool
		filter  string
	)

	cmd := &cobra.Command{
		Use:   "fonts",
		Short: "List the fonts scifont can see",
		Long: `List the fonts scifont can see.

By default this scans the system font directories (results are cached and
reused until the installed fonts change). With --bundled it lists the
bundled substitute fonts and whether their files are present instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if bundled {
				return c.runBundled()
			}
			return c.runSystemFonts(cmd, noCache, filter)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "rescan instead of using the cached result")
	cmd.Flags().BoolVar(&bundled, "bundled", false, "list bundled fonts instead of system fonts")
	cmd.Flags().StringVar(&filter, "contains", "", "only show families containing this substring")

	return cmd
}

func (c *CLI) runSystemFonts(cmd *cobra.Command, noCache bool, filter string) error {
	spinner := newSpinnerWithContext(cmd.Context(), "Scanning installed fonts...")
	spinner.Start()
	snap, err := c.newScanner(noCache).Snapshot(cmd.Context())
	if err != nil {
		spinner.StopWithError("Font scan failed")
		return err
	}
	spinner.Stop()

	names := snap.Names()
	shown := 0
	for _, name := range names {
		if filter != "" && !containsFold(name, filter) {
			continue
		}
		entry, _ := snap.Lookup(name)
		fmt.Println(StyleValue.Render(name) + " " + StyleDim.Render(entry.Path))
		shown++
	}
	printNewline()
	if filter != "" {
		printInfo("%d of %d installed font families", shown, len(names))
	} else {
		printInfo("%d installed font families", len(names))
	}
	return nil
}

func (c *CLI) runBundled() error {
	for _, id := range fonts.IDs() {
		if _, err := fonts.Bytes(id); err != nil {
			printWarning("%s (file not found, the compiled-in face stands in)", id)
			continue
		}
		printSuccess("%s", id)
	}
	printNewline()
	printDetail("Font asset directories: %v", fonts.Dirs())
	return nil
}

// containsFold reports whether s contains substr, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
