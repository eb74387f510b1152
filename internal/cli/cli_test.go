package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir == "" {
		t.Error("cacheDir() returned empty string")
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-test")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-test", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"styles", "resolve", "preview", "fonts", "pick", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"pdf", []string{"pdf"}},
		{"svg,pdf,png", []string{"svg", "pdf", "png"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoadRegistryBuiltinsOnly(t *testing.T) {
	reg, err := loadRegistry("")
	if err != nil {
		t.Fatalf("loadRegistry error: %v", err)
	}
	if !reg.Has("nature") {
		t.Error("builtin registry should contain nature")
	}
}

func TestLoadRegistryWithPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	data := `
[[preset]]
id = "lab"
preferred = ["Futura"]

[preset.sizes]
base = 9.0
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := loadRegistry(path)
	if err != nil {
		t.Fatalf("loadRegistry error: %v", err)
	}
	if !reg.Has("lab") {
		t.Error("registry should contain the preset style")
	}
	if !reg.Has("nature") {
		t.Error("builtins should survive preset loading")
	}
}
