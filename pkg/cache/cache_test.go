package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	key := Key("scan", "/usr/share/fonts", 42)
	value := []byte(`["Arial","Helvetica"]`)

	// Miss before Set
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get before Set should miss")
	}

	if err := c.Set(ctx, key, value, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get after Set should hit")
	}
	if string(data) != string(value) {
		t.Errorf("Get = %q, want %q", data, value)
	}

	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)

	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("key %q survived Clear", k)
		}
	}
}

func TestKeyDeterministic(t *testing.T) {
	a := Key("scan", []string{"x", "y"}, 3)
	b := Key("scan", []string{"x", "y"}, 3)
	if a != b {
		t.Errorf("Key is not deterministic: %q vs %q", a, b)
	}
	if c := Key("scan", []string{"x", "z"}, 3); c == a {
		t.Error("different inputs produced the same key")
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-test")
	dir, err := DefaultDir("scifont")
	if err != nil {
		t.Fatalf("DefaultDir error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-test", "scifont"); dir != want {
		t.Errorf("DefaultDir = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "")
	dir, err = DefaultDir("scifont")
	if err != nil {
		t.Fatalf("DefaultDir error: %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".cache", "scifont"); dir != want {
		t.Errorf("DefaultDir = %q, want %q", dir, want)
	}
}
