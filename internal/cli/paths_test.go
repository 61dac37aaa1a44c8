package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/chartnote/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "/tmp/custom-cache", filepath.Join("/tmp/custom-cache", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			dir, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir: %v", err)
			}
			if dir != tt.want {
				t.Errorf("cacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}

func TestNewCacheFallsBackWhenDirUnusable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_CACHE_HOME", file)
	t.Setenv(cache.RedisURLEnv, "")

	c := New(os.Stderr, LogInfo)
	cc, err := c.newCache(t.Context(), cacheFlags{})
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	if _, ok := cc.(cache.NullCache); !ok {
		t.Errorf("unusable directory gave %T, want the null cache", cc)
	}
}
