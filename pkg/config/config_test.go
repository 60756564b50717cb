package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Grid.Cols != 128 || cfg.Grid.Rows != 178 {
		t.Errorf("grid = %dx%d, want 128x178", cfg.Grid.Cols, cfg.Grid.Rows)
	}
	if cfg.Grid.Spacing != 9 || cfg.Grid.Border != 18 {
		t.Errorf("spacing/border = %v/%v, want 9/18", cfg.Grid.Spacing, cfg.Grid.Border)
	}
	if cfg.View.ZoomMin != 0.6 || cfg.View.ZoomMax != 8.0 || cfg.View.ZoomInitial != 3.2 {
		t.Errorf("view = %+v", cfg.View)
	}
	if cfg.Input.HitRadius != 10 || cfg.Input.DragThreshold != 6 {
		t.Errorf("input = %+v", cfg.Input)
	}
	if cfg.Save.DelayMS != 500 || cfg.Save.DragDelayMS != 300 {
		t.Errorf("save = %+v", cfg.Save)
	}
	if cfg.Store.Backend != "file" {
		t.Errorf("backend = %q, want file", cfg.Store.Backend)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := `
[view]
zoom_initial = 2.0

[store]
backend = "redis"
redis_addr = "redis.internal:6379"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.View.ZoomInitial != 2.0 {
		t.Errorf("zoom_initial = %v, want 2.0", cfg.View.ZoomInitial)
	}
	if cfg.Store.Backend != "redis" || cfg.Store.RedisAddr != "redis.internal:6379" {
		t.Errorf("store = %+v", cfg.Store)
	}

	// Unset sections keep the defaults.
	if cfg.Grid.Cols != 128 || cfg.View.ZoomMax != 8.0 || cfg.Input.HitRadius != 10 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadBrokenFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("grid = {"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a broken file")
	}
}
