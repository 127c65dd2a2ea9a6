package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/lifeline/pkg/cache"
)

func TestLocalCacheDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	tests := []struct {
		name    string
		backend string
		dir     string
		want    string
		wantErr bool
	}{
		{"default", "", "", filepath.Join(xdg, appName), false},
		{"file backend", "file", "", filepath.Join(xdg, appName), false},
		{"configured dir", "file", "/srv/lifeline-cache", "/srv/lifeline-cache", false},
		{"redis has no dir", "redis", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.backend != "" {
				t.Setenv("LIFELINE_CACHE_BACKEND", tt.backend)
			}
			if tt.dir != "" {
				t.Setenv("LIFELINE_CACHE_DIR", tt.dir)
			}
			if tt.backend == "redis" {
				t.Setenv("LIFELINE_CACHE_REDIS_ADDR", "localhost:6379")
			}

			c := New(io.Discard, LogInfo)
			got, err := c.localCacheDir()
			if (err != nil) != tt.wantErr {
				t.Fatalf("localCacheDir() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("localCacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheClearCommand(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir := filepath.Join(xdg, appName)

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"scene:a", "artifact:a:svg", "artifact:a:json"} {
		if err := fc.Set(ctx, key, []byte("x"), 0); err != nil {
			t.Fatalf("Set(%q): %v", key, err)
		}
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	for _, key := range []string{"scene:a", "artifact:a:svg"} {
		if _, ok, _ := fc.Get(ctx, key); ok {
			t.Errorf("Get(%q) still hits after clear", key)
		}
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir removed: %v", err)
	}
}

func TestCacheClearCommandEmpty(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("cache clear on missing dir: %v", err)
	}
}
