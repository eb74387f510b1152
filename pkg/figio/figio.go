// Package figio writes styled figures to SVG, PDF, EPS and PNG files.
//
// Export honors the committed rendering configuration: PDF output embeds
// fonts when the editable-text flag is set so glyphs stay addressable text
// in vector editors, SVG output always carries native <text> elements
// (gonum/plot's SVG canvas never outlines text), and PNG output uses the
// style's DPI.
package figio

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/matzehuels/scifont/pkg/errors"
	"github.com/matzehuels/scifont/pkg/rc"
)

// Supported export formats.
const (
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatEPS = "eps"
	FormatPNG = "png"
)

// Formats lists the supported export formats.
var Formats = []string{FormatSVG, FormatPDF, FormatEPS, FormatPNG}

// Save renders p at the given canvas size and writes it to path, choosing
// the format from the file extension. An unsupported extension fails before
// the file is created.
func Save(p *plot.Plot, w, h vg.Length, path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !supported(format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return Write(p, w, h, format, f)
}

func supported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Write renders p at the given canvas size in the named format.
func Write(p *plot.Plot, w, h vg.Length, format string, out io.Writer) error {
	cfg, _ := rc.Current()

	var c interface {
		io.WriterTo
		vg.CanvasSizer
	}
	switch strings.ToLower(format) {
	case FormatSVG:
		c = vgsvg.New(w, h)
	case FormatPDF:
		pdf := vgpdf.New(w, h)
		pdf.EmbedFonts(cfg.PDFEmbedFonts)
		c = pdf
	case FormatEPS:
		c = vgeps.New(w, h)
	case FormatPNG:
		dpi := cfg.DPI
		if dpi <= 0 {
			dpi = 300
		}
		img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
		c = vgimg.PngCanvas{Canvas: img}
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}

	p.Draw(draw.New(c))
	if _, err := c.WriteTo(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s output", format)
	}
	return nil
}
