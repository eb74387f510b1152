package resolve

import (
	"strings"
	"testing"

	"github.com/matzehuels/scifont/pkg/styles"
	"github.com/matzehuels/scifont/pkg/sysfonts"
)

// fakeAssets is an in-memory asset store.
type fakeAssets struct {
	available   map[string]bool
	registerErr error // forced Register failure, nil for normal behavior
	registered  []string
}

func (f *fakeAssets) Has(id string) bool { return f.available[id] }

func (f *fakeAssets) Register(id string) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	if !f.available[id] {
		return errMissing(id)
	}
	f.registered = append(f.registered, id)
	return nil
}

type errMissing string

func (e errMissing) Error() string { return "missing asset " + string(e) }

func allAssets() *fakeAssets {
	return &fakeAssets{available: map[string]bool{
		"Arimo": true, "Tinos": true, "Noto Sans SC": true, "Go": true,
	}}
}

func mustLookup(t *testing.T, id string) styles.Descriptor {
	t.Helper()
	d, err := styles.Default().Lookup(id)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestResolveSystemMatch(t *testing.T) {
	r := &Resolver{Assets: allAssets()}
	d := mustLookup(t, "nature")
	snap := sysfonts.FromNames("Arial", "Times New Roman")

	res := r.Resolve(d, snap)
	if res.Family != "Arial" {
		t.Errorf("Family = %q, want Arial", res.Family)
	}
	if res.Source != SourceSystem {
		t.Errorf("Source = %q, want %q", res.Source, SourceSystem)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none for a system match", res.Warnings)
	}
}

func TestResolvePreferenceOrder(t *testing.T) {
	r := &Resolver{Assets: allAssets()}
	d := styles.Descriptor{
		ID:             "test",
		FamilyClass:    styles.SansSerif,
		PreferredFonts: []string{"A", "B"},
		FallbackFontID: "Arimo",
	}

	// Both available: the first always wins.
	res := r.Resolve(d, sysfonts.FromNames("B", "A"))
	if res.Family != "A" {
		t.Errorf("Family = %q, want A (first preference wins)", res.Family)
	}

	// Only the second available: it is used.
	res = r.Resolve(d, sysfonts.FromNames("B"))
	if res.Family != "B" {
		t.Errorf("Family = %q, want B", res.Family)
	}
}

func TestResolveCanonicalSystemName(t *testing.T) {
	r := &Resolver{Assets: allAssets()}
	d := mustLookup(t, "ieee")
	snap := sysfonts.New(sysfonts.Entry{Name: "Times New Roman", Path: "/fonts/times.ttf"})

	res := r.Resolve(d, snap)
	if res.Family != "Times New Roman" {
		t.Errorf("Family = %q, want the snapshot's canonical name", res.Family)
	}
	if res.Path != "/fonts/times.ttf" {
		t.Errorf("Path = %q, want the matched font file", res.Path)
	}
}

func TestResolveBundledFallback(t *testing.T) {
	assets := allAssets()
	r := &Resolver{Assets: assets}
	d := mustLookup(t, "nature")
	// Times is installed but Arial/Helvetica are not.
	snap := sysfonts.FromNames("Times New Roman")

	res := r.Resolve(d, snap)
	if res.Family != "Arimo" {
		t.Errorf("Family = %q, want Arimo", res.Family)
	}
	if res.Source != SourceBundled {
		t.Errorf("Source = %q, want %q", res.Source, SourceBundled)
	}
	if len(res.Warnings) == 0 {
		t.Error("bundled fallback should carry a diagnostic")
	}
	if len(res.Missing) != 2 {
		t.Errorf("Missing = %v, want both preferred fonts", res.Missing)
	}
	if len(assets.registered) != 1 || assets.registered[0] != "Arimo" {
		t.Errorf("registered = %v, want [Arimo]", assets.registered)
	}
}

func TestResolveCJKProbe(t *testing.T) {
	r := &Resolver{Assets: allAssets()}
	d := mustLookup(t, "zh")

	// A known CJK family present: resolved from the system, no diagnostics.
	res := r.Resolve(d, sysfonts.FromNames("Helvetica", "Microsoft YaHei"))
	if res.Family != "Microsoft YaHei" || res.Source != SourceSystem {
		t.Errorf("got %q/%q, want Microsoft YaHei/system", res.Family, res.Source)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}

	// Probe order is respected.
	res = r.Resolve(d, sysfonts.FromNames("SimHei", "PingFang SC"))
	if res.Family != "PingFang SC" {
		t.Errorf("Family = %q, want PingFang SC (earlier in probe order)", res.Family)
	}

	// No CJK family installed: the bundled script font is used.
	res = r.Resolve(d, sysfonts.FromNames("Arial"))
	if res.Family != "Noto Sans SC" || res.Source != SourceBundled {
		t.Errorf("got %q/%q, want Noto Sans SC/bundled", res.Family, res.Source)
	}
}

func TestResolveDefaultWhenBundledMissing(t *testing.T) {
	assets := &fakeAssets{available: map[string]bool{"Go": true}}
	r := &Resolver{Assets: assets}
	d := mustLookup(t, "zh")

	res := r.Resolve(d, sysfonts.FromNames())
	if res.Family != "Go" {
		t.Errorf("Family = %q, want Go", res.Family)
	}
	if res.Source != SourceDefault {
		t.Errorf("Source = %q, want %q", res.Source, SourceDefault)
	}
	// One warning for the missing bundle, one for the degradation.
	if len(res.Warnings) < 2 {
		t.Errorf("Warnings = %v, want bundle-missing and degradation diagnostics", res.Warnings)
	}
}

func TestResolveDistinguishesMissingFromBroken(t *testing.T) {
	d := mustLookup(t, "nature")
	snap := sysfonts.FromNames()

	// Asset not shipped at all: the diagnostic says so without a load attempt.
	r := &Resolver{Assets: &fakeAssets{available: map[string]bool{}}}
	res := r.Resolve(d, snap)
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "not available") {
		t.Errorf("Warnings = %v, want a not-available diagnostic first", res.Warnings)
	}

	// Asset present but unloadable: the diagnostic carries the load error.
	broken := &fakeAssets{
		available:   map[string]bool{"Arimo": true},
		registerErr: errMissing("corrupt"),
	}
	r = &Resolver{Assets: broken}
	res = r.Resolve(d, snap)
	if res.Source != SourceDefault {
		t.Errorf("Source = %q, want %q", res.Source, SourceDefault)
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "failed to load") {
		t.Errorf("Warnings = %v, want a failed-to-load diagnostic first", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "corrupt") {
		t.Errorf("warning %q does not carry the load error", res.Warnings[0])
	}
}

func TestResolveNeverFails(t *testing.T) {
	// Even with no assets at all, resolution produces a usable family name.
	assets := &fakeAssets{available: map[string]bool{}}
	r := &Resolver{Assets: assets}

	for _, id := range styles.Default().IDs() {
		t.Run(id, func(t *testing.T) {
			res := r.Resolve(mustLookup(t, id), sysfonts.FromNames())
			if res.Family == "" {
				t.Error("resolution produced an empty family")
			}
			if res.Source != SourceDefault {
				t.Errorf("Source = %q, want %q", res.Source, SourceDefault)
			}
		})
	}
}

func TestResolveWarningNamesMissingFonts(t *testing.T) {
	r := &Resolver{Assets: allAssets()}
	res := r.Resolve(mustLookup(t, "nature"), sysfonts.FromNames())

	if len(res.Warnings) == 0 {
		t.Fatal("want a diagnostic")
	}
	w := res.Warnings[0]
	for _, name := range []string{"Arial", "Helvetica", "Arimo"} {
		if !strings.Contains(w, name) {
			t.Errorf("warning %q does not mention %q", w, name)
		}
	}
}
