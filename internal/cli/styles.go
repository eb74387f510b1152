package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// stylesCommand creates the styles listing command.
func (c *CLI) stylesCommand() *cobra.Command {
	var presetFile string

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "List available publication styles",
		Long: `List available publication styles.

Each style carries a font preference list, per-category text sizes in
points, and axis cosmetics. Custom styles from a TOML preset file are
listed alongside the built-ins when --presets is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(presetFile)
			if err != nil {
				return err
			}

			rows := [][]string{}
			for _, d := range reg.Descriptors() {
				rows = append(rows, []string{
					d.ID,
					d.Name,
					string(d.FamilyClass),
					strings.Join(d.PreferredFonts, ", "),
					fmt.Sprintf("%g", d.Sizes.Base),
					fmt.Sprintf("%g", d.Sizes.TickLabel),
					fmt.Sprintf("%d", d.DPI),
				})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "Name", "Class", "Preferred fonts", "Base", "Ticks", "DPI").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if col == 0 {
						return lipgloss.NewStyle().Foreground(colorCyan)
					}
					return lipgloss.NewStyle().Foreground(colorWhite)
				})

			fmt.Println(t.Render())
			printNextStep("Inspect a style's font resolution", appName+" resolve <id>")
			return nil
		},
	}

	cmd.Flags().StringVar(&presetFile, "presets", "", "TOML file with additional style presets")

	return cmd
}
