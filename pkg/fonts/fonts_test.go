package fonts

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/scifont/pkg/errors"
)

// cached reports whether the renderer's font cache serves the family itself
// rather than substituting its default face.
func cached(family string) bool {
	face := font.DefaultCache.Lookup(font.Font{Typeface: font.Typeface(family)}, vg.Points(10))
	return face.Font.Typeface == font.Typeface(family)
}

func TestIDs(t *testing.T) {
	ids := IDs()
	want := []string{Arimo, GoFont, NotoSansSC, Tinos}
	if len(ids) != len(want) {
		t.Fatalf("IDs() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestBytesCompiledIn(t *testing.T) {
	data, err := Bytes(GoFont)
	if err != nil {
		t.Fatalf("Bytes(Go) error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Bytes(Go) returned empty data")
	}
	if !Has(GoFont) {
		t.Error("Has(Go) = false, want true")
	}
}

func TestBytesUnknown(t *testing.T) {
	_, err := Bytes("Comic Sans MS")
	if err == nil {
		t.Fatal("Bytes of unknown id should fail")
	}
	if !errors.Is(err, errors.ErrCodeFontAssetMissing) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFontAssetMissing)
	}
}

func TestBytesCaseInsensitive(t *testing.T) {
	if _, err := Bytes("go"); err != nil {
		t.Errorf("Bytes(go) error: %v", err)
	}
}

func TestBytesFromFontDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Arimo-Regular.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvFontDir, dir)

	data, err := Bytes(Arimo)
	if err != nil {
		t.Fatalf("Bytes(Arimo) error: %v", err)
	}
	if len(data) != len(goregular.TTF) {
		t.Errorf("Bytes(Arimo) returned %d bytes, want %d", len(data), len(goregular.TTF))
	}
}

func TestRegisterGo(t *testing.T) {
	if err := Register(GoFont); err != nil {
		t.Fatalf("Register(Go) error: %v", err)
	}
	if !Registered(GoFont) {
		t.Error("Registered(Go) = false after Register")
	}
	// The family must be usable by the renderer.
	if !cached(GoFont) {
		t.Error("font cache does not serve the Go family after registration")
	}
	// Idempotent.
	if err := Register(GoFont); err != nil {
		t.Errorf("second Register(Go) error: %v", err)
	}
}

func TestRegisterMissingAsset(t *testing.T) {
	t.Setenv(EnvFontDir, t.TempDir()) // empty dir, no assets on disk

	err := Register(Tinos)
	if err == nil {
		t.Skip("Tinos asset installed on this host")
	}
	if !errors.Is(err, errors.ErrCodeFontAssetMissing) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFontAssetMissing)
	}
}

func TestRegisterStandIn(t *testing.T) {
	const family = "Scifont Stand-In Test"
	if err := RegisterStandIn(family); err != nil {
		t.Fatalf("RegisterStandIn error: %v", err)
	}
	if !cached(family) {
		t.Errorf("font cache does not serve %q after stand-in registration", family)
	}
}

func TestRegisterPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}

	const family = "Scifont Path Test"
	if err := RegisterPath(family, path); err != nil {
		t.Fatalf("RegisterPath error: %v", err)
	}
	if !cached(family) {
		t.Errorf("font cache does not serve %q after path registration", family)
	}

	if err := RegisterPath("Nope", filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("RegisterPath of missing file should fail")
	}
}

func TestRegisterPathBadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := RegisterPath("Scifont Bad Font Test", path)
	if err == nil {
		t.Fatal("RegisterPath of invalid data should fail")
	}
	if !errors.Is(err, errors.ErrCodeFontParse) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFontParse)
	}
}
