package cli

import (
	"os"
	"path/filepath"
	"testing"
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
				t.Fatalf("cacheDir() error: %v", err)
			}
			if dir != tt.want {
				t.Errorf("cacheDir() = %q, want %q", dir, tt.want)
			}
		})
	}
}

func TestJournalOptions(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	c := New(os.Stderr, LogInfo)

	a, err := c.journalOptions("boards/a.json")
	if err != nil {
		t.Fatal(err)
	}
	if a.Backend != "file" {
		t.Errorf("memory backend should be kept in files, got %q", a.Backend)
	}
	if filepath.Dir(a.Dir) != filepath.Join(data, appName, "history") {
		t.Errorf("dir = %q", a.Dir)
	}
	b, _ := c.journalOptions("boards/b.json")
	if a.Dir == b.Dir {
		t.Error("documents share a journal")
	}

	c.cfg.History.Backend = "redis"
	c.cfg.History.RedisAddr = "localhost:6379"
	r, _ := c.journalOptions("boards/a.json")
	if r.Backend != "redis" || r.RedisKey != "snapboard:history:"+filepath.Base(a.Dir) {
		t.Errorf("redis options = %+v", r)
	}
}
