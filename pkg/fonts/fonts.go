// Package fonts provides the bundled fallback font assets and registers
// them with the gonum/plot font cache.
//
// Assets are addressed by stable identifiers that match the fallback IDs in
// the style registry. The Go fonts are compiled into the binary and always
// available; the metric-compatible substitutes (Arimo for Arial/Helvetica,
// Tinos for Times New Roman) and the CJK fallback (Noto Sans SC) are font
// files looked up in the asset directories. Shipping those files is a
// packaging concern; their absence is a recoverable condition that resolution
// degrades around, never an error for the caller.
package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot/font"

	"github.com/matzehuels/scifont/pkg/errors"
)

// Canonical bundled font identifiers. These are the values style descriptors
// use as FallbackFontID and the family names registered with gonum/plot.
const (
	Arimo      = "Arimo"        // metric-compatible with Arial / Helvetica
	Tinos      = "Tinos"        // metric-compatible with Times New Roman
	NotoSansSC = "Noto Sans SC" // Simplified Chinese coverage
	GoFont     = "Go"           // compiled-in last resort, always present
)

// EnvFontDir names the environment variable that prepends an asset directory.
const EnvFontDir = "SCIFONT_FONT_DIR"

// asset describes where one bundled font's bytes come from: either compiled
// into the binary or a list of candidate file names in the asset directories.
type asset struct {
	embedded []byte
	files    []string
}

var assets = map[string]asset{
	Arimo:      {files: []string{"Arimo-Regular.ttf", "Arimo.ttf"}},
	Tinos:      {files: []string{"Tinos-Regular.ttf", "Tinos.ttf"}},
	NotoSansSC: {files: []string{"NotoSansSC-Regular.ttf", "NotoSansSC.ttf"}},
	GoFont:     {embedded: goregular.TTF},
}

// Variant faces registered alongside the Go regular face so bold/italic text
// in figures renders when the last-resort family is active.
var goVariants = []struct {
	style  xfont.Style
	weight xfont.Weight
	data   []byte
}{
	{xfont.StyleNormal, xfont.WeightBold, gobold.TTF},
	{xfont.StyleItalic, xfont.WeightNormal, goitalic.TTF},
}

var (
	mu         sync.Mutex
	registered = make(map[font.Font]bool) // faces already in the cache
)

// IDs returns the bundled font identifiers in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(assets))
	for id := range assets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Has reports whether the asset bytes for id can be produced right now,
// either from the binary or from a file in the asset directories.
func Has(id string) bool {
	_, err := Bytes(id)
	return err == nil
}

// Bytes returns the TTF bytes for a bundled font identifier.
func Bytes(id string) ([]byte, error) {
	a, ok := lookup(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeFontAssetMissing,
			"no bundled font %q (bundled fonts: %s)", id, strings.Join(IDs(), ", "))
	}
	if a.embedded != nil {
		return a.embedded, nil
	}
	for _, dir := range Dirs() {
		for _, name := range a.files {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err == nil && len(data) > 0 {
				return data, nil
			}
		}
	}
	return nil, errors.New(errors.ErrCodeFontAssetMissing,
		"bundled font %q not found in asset directories %v", id, Dirs())
}

// Dirs returns the asset directories searched for bundled font files, in
// priority order: $SCIFONT_FONT_DIR, a fonts directory next to the
// executable, then the XDG data directory.
func Dirs() []string {
	var dirs []string
	if dir := os.Getenv(EnvFontDir); dir != "" {
		dirs = append(dirs, dir)
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Join(filepath.Dir(exe), "fonts"))
	}
	if data := os.Getenv("XDG_DATA_HOME"); data != "" {
		dirs = append(dirs, filepath.Join(data, "scifont", "fonts"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "scifont", "fonts"))
	}
	return dirs
}

// Register parses the bundled font id and adds it to the gonum/plot font
// cache under its own identifier. Registration happens once per process;
// repeated calls are no-ops.
func Register(id string) error {
	data, err := Bytes(id)
	if err != nil {
		return err
	}
	if err := addFont(regular(canonical(id)), data); err != nil {
		return err
	}
	if canonical(id) == GoFont {
		for _, v := range goVariants {
			// Variant failures are impossible for compiled-in fonts; keep the
			// error path anyway so a corrupted build surfaces loudly.
			fnt := regular(GoFont)
			fnt.Style = v.style
			fnt.Weight = v.weight
			if err := addFont(fnt, v.data); err != nil {
				return err
			}
		}
	}
	return nil
}

// RegisterPath reads a font file and adds it to the gonum/plot font cache
// under the given family name. Used to back resolved system fonts.
func RegisterPath(family, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFontAssetMissing, err, "read font file %s", path)
	}
	return addFont(regular(family), data)
}

// RegisterStandIn registers the compiled-in Go regular face under the given
// family name, so drawing with that family cannot fail even when its real
// bytes are unavailable to the renderer.
func RegisterStandIn(family string) error {
	return addFont(regular(family), goregular.TTF)
}

// Registered reports whether a family name has been added to the gonum/plot
// font cache by this package.
func Registered(family string) bool {
	mu.Lock()
	defer mu.Unlock()
	return registered[regular(family)]
}

// regular is the cache key for a family's upright regular face.
func regular(family string) font.Font {
	return font.Font{Typeface: font.Typeface(family)}
}

func addFont(fnt font.Font, data []byte) error {
	mu.Lock()
	defer mu.Unlock()
	if registered[fnt] {
		return nil
	}
	face, err := opentype.Parse(data)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFontParse, err, "parse font %q", fnt.Typeface)
	}
	font.DefaultCache.Add(font.Collection{{Font: fnt, Face: face}})
	registered[fnt] = true
	return nil
}

// lookup finds an asset by identifier, case-insensitively.
func lookup(id string) (asset, bool) {
	if a, ok := assets[id]; ok {
		return a, true
	}
	for key, a := range assets {
		if strings.EqualFold(key, id) {
			return a, true
		}
	}
	return asset{}, false
}

// canonical maps an identifier to its canonical casing.
func canonical(id string) string {
	for key := range assets {
		if strings.EqualFold(key, id) {
			return key
		}
	}
	return id
}

// Assets adapts this package to the resolver's asset store interface.
type Assets struct{}

// Has reports whether the bundled font id is available.
func (Assets) Has(id string) bool { return Has(id) }

// Register ensures the bundled font id is registered with the renderer.
func (Assets) Register(id string) error { return Register(id) }
