package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scifont/pkg/styles"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StyleListModel - Interactive style selection
// =============================================================================

// StyleListModel is the bubbletea model for interactive style selection.
type StyleListModel struct {
	Styles   []styles.Descriptor
	Cursor   int
	Selected *styles.Descriptor
}

// NewStyleListModel creates a new style list model.
func NewStyleListModel(descriptors []styles.Descriptor) StyleListModel {
	return StyleListModel{Styles: descriptors}
}

func (m StyleListModel) Init() tea.Cmd {
	return nil
}

func (m StyleListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Styles)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Styles[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m StyleListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Publication Style"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, d := range m.Styles {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		detail := fmt.Sprintf("%s, %gpt", d.FamilyClass, d.Sizes.Base)
		line := fmt.Sprintf("%s%-10s %-22s %s", cursor, d.ID, d.Name, listDimStyle.Render(detail))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Styles))))

	return b.String()
}

// =============================================================================
// pick command
// =============================================================================

// pickCommand creates the interactive style picker.
func (c *CLI) pickCommand() *cobra.Command {
	var presetFile string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a style interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(presetFile)
			if err != nil {
				return err
			}

			model := NewStyleListModel(reg.Descriptors())
			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return err
			}

			result, ok := final.(StyleListModel)
			if !ok || result.Selected == nil {
				printInfo("No style selected")
				return nil
			}

			d := *result.Selected
			printSuccess("%s (%s)", d.Name, d.ID)
			printDetail("fonts: %s", strings.Join(d.PreferredFonts, ", "))
			printDetail("sizes: base %g, ticks %g, legend %g, title %g",
				d.Sizes.Base, d.Sizes.TickLabel, d.Sizes.Legend, d.Sizes.Title)
			printNewline()
			printNextStep("Preview it", fmt.Sprintf("%s preview %s", appName, d.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&presetFile, "presets", "", "TOML file with additional style presets")

	return cmd
}
