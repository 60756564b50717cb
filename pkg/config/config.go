// Package config loads the puzzled configuration from a TOML file.
//
// The file lives at ~/.config/puzzled/config.toml by default and every field
// is optional; absent fields keep their defaults, and a missing file yields
// the default configuration. The defaults reproduce the editor's original
// tuning: a 128x178 lattice with 9-unit dot spacing, initial zoom 3.2, a
// 10-pixel hit radius, a 6-pixel drag threshold, and 500ms/300ms save delays.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration document.
type Config struct {
	Grid  GridConfig  `toml:"grid"`
	View  ViewConfig  `toml:"view"`
	Input InputConfig `toml:"input"`
	Save  SaveConfig  `toml:"save"`
	Share ShareConfig `toml:"share"`
	Store StoreConfig `toml:"store"`
}

// GridConfig sets the lattice extent and world geometry.
type GridConfig struct {
	Cols    int     `toml:"cols"`
	Rows    int     `toml:"rows"`
	Spacing float64 `toml:"spacing"`
	Border  float64 `toml:"border"`
}

// ViewConfig bounds the zoom scalar and sets its starting value.
type ViewConfig struct {
	ZoomMin     float64 `toml:"zoom_min"`
	ZoomMax     float64 `toml:"zoom_max"`
	ZoomInitial float64 `toml:"zoom_initial"`
}

// InputConfig tunes pointer handling, in screen pixels.
type InputConfig struct {
	HitRadius     float64 `toml:"hit_radius"`
	DragThreshold float64 `toml:"drag_threshold"`
}

// SaveConfig tunes the debounced persistence delays, in milliseconds.
// Zero or negative values fall back to the built-in delays.
type SaveConfig struct {
	DelayMS     int `toml:"delay_ms"`      // after a discrete edit
	DragDelayMS int `toml:"drag_delay_ms"` // while a drag is in progress
}

// ShareConfig sets the base URL that share links and the serve redirect are
// built on. The state token is embedded in its fragment.
type ShareConfig struct {
	BaseURL string `toml:"base_url"`
}

// StoreConfig selects the bookmark store backend.
// Backend is one of "file", "redis", or "mongo".
type StoreConfig struct {
	Backend   string `toml:"backend"`
	Path      string `toml:"path"`       // file backend: bookmark directory
	RedisAddr string `toml:"redis_addr"` // redis backend: host:port
	MongoURI  string `toml:"mongo_uri"`  // mongo backend: connection URI
	MongoDB   string `toml:"mongo_db"`   // mongo backend: database name
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid:  GridConfig{Cols: 128, Rows: 178, Spacing: 9, Border: 18},
		View:  ViewConfig{ZoomMin: 0.6, ZoomMax: 8.0, ZoomInitial: 3.2},
		Input: InputConfig{HitRadius: 10, DragThreshold: 6},
		Save:  SaveConfig{DelayMS: 500, DragDelayMS: 300},
		Share: ShareConfig{BaseURL: "https://puzzled.local/p"},
		Store: StoreConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
			MongoDB:   "puzzled",
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.config/puzzled/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "puzzled", "config.toml"), nil
}

// Load reads the configuration at path, falling back to DefaultPath when
// path is empty. A missing file is not an error; the defaults are returned.
// A file that exists but does not parse is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
