package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/scifont"
	"github.com/matzehuels/scifont/pkg/figio"
	"github.com/matzehuels/scifont/pkg/rc"
)

// previewCommand creates the preview command, which renders a sample
// figure with a style applied so the result can be judged by eye.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		presetFile string
		formatsStr string
		output     string
		baseSize   float64
		widthCm    float64
		heightCm   float64
	)

	cmd := &cobra.Command{
		Use:   "preview <style>",
		Short: "Render a sample figure with a style applied",
		Long: `Render a sample figure with a style applied.

The figure is a small damped-oscillation plot with a title, axis labels,
tick labels and a legend, sized like a single-column journal figure. One
file is written per requested format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)

			// Validate the style before any scan work.
			if _, err := lookupStyle(presetFile, args[0]); err != nil {
				return err
			}

			opts := []scifont.Option{
				scifont.WithLogger(c.Logger),
				scifont.WithScanner(c.newScanner(false)),
			}
			if presetFile != "" {
				reg, err := loadRegistry(presetFile)
				if err != nil {
					return err
				}
				opts = append(opts, scifont.WithRegistry(reg))
			}
			if baseSize > 0 {
				opts = append(opts, scifont.WithBaseSize(baseSize))
			}

			spinner := newSpinnerWithContext(cmd.Context(), "Resolving fonts...")
			spinner.Start()
			err := scifont.Use(args[0], opts...)
			if err != nil {
				spinner.StopWithError("Style could not be applied")
				return err
			}
			spinner.Stop()

			cfg, _ := scifont.CurrentConfig()
			printInfo("%s with %s (%s)", cfg.StyleName, cfg.Family, sourceBadge(cfg.Source))

			p, err := samplePlot()
			if err != nil {
				return err
			}

			w := vg.Length(widthCm) * vg.Centimeter
			h := vg.Length(heightCm) * vg.Centimeter
			for _, format := range formats {
				path := fmt.Sprintf("%s.%s", output, format)
				if err := figio.Save(p, w, h, path); err != nil {
					return err
				}
				printFile(path)
			}
			printSuccess("Wrote %d file(s)", len(formats))
			return nil
		},
	}

	cmd.Flags().StringVar(&presetFile, "presets", "", "TOML file with additional style presets")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, eps, png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "preview", "output base path (extension appended per format)")
	cmd.Flags().Float64Var(&baseSize, "base-size", 0, "override the style's base text size in points")
	cmd.Flags().Float64Var(&widthCm, "width", 8.5, "figure width in cm")
	cmd.Flags().Float64Var(&heightCm, "height", 6, "figure height in cm")

	return cmd
}

// samplePlot builds the styled demo figure.
func samplePlot() (*plot.Plot, error) {
	p := plot.New()
	if err := rc.StylePlot(p); err != nil {
		return nil, err
	}

	p.Title.Text = "Damped oscillation"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Amplitude (a.u.)"

	curve := func(decay float64) plotter.XYs {
		pts := make(plotter.XYs, 101)
		for i := range pts {
			x := float64(i) / 10
			pts[i].X = x
			pts[i].Y = math.Exp(-decay*x) * math.Cos(2*math.Pi*x)
		}
		return pts
	}

	for _, s := range []struct {
		name  string
		decay float64
	}{
		{"γ = 0.2", 0.2},
		{"γ = 0.5", 0.5},
	} {
		line, err := plotter.NewLine(curve(s.decay))
		if err != nil {
			return nil, err
		}
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	return p, nil
}
