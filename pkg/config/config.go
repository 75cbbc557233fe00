// Package config loads snapboard settings from a TOML file with
// environment overrides.
//
// Lookup order for the file: an explicit path (the --config flag), then
// $XDG_CONFIG_HOME/snapboard/config.toml, then ~/.config/snapboard/config.toml.
// A missing default file is not an error; defaults apply.
//
// Example:
//
//	grid_size = 20
//	threshold = 5
//
//	[snap]
//	shapes = true
//	grid = true
//	resize_grid = false
//	angle_step = 15
//
//	[stage]
//	width = 1600
//	height = 1000
//
//	[history]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/snapboard/pkg/errors"
	"github.com/matzehuels/snapboard/pkg/geom"
	"github.com/matzehuels/snapboard/pkg/history"
	"github.com/matzehuels/snapboard/pkg/interact"
	"github.com/matzehuels/snapboard/pkg/scene"
	"github.com/matzehuels/snapboard/pkg/snap"
)

// Config is the full settings tree.
type Config struct {
	GridSize  float64 `toml:"grid_size"`
	Threshold float64 `toml:"threshold"`

	Snap    Snap    `toml:"snap"`
	Stage   Stage   `toml:"stage"`
	History History `toml:"history"`
	Cache   Cache   `toml:"cache"`
	Serve   Serve   `toml:"serve"`
}

// Snap holds the three snapping switches. Each is optional: an absent key
// means "engine default" (shapes and grid on, resize_grid follows grid).
type Snap struct {
	Shapes     *bool   `toml:"shapes"`
	Grid       *bool   `toml:"grid"`
	ResizeGrid *bool   `toml:"resize_grid"`
	AngleStep  float64 `toml:"angle_step"`
}

// Stage is the canvas size in world units. Zero disables stage-edge snapping.
type Stage struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// History selects the undo journal backend.
type History struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	RedisKey  string `toml:"redis_key"`
	Limit     int    `toml:"limit"`
}

// Cache configures the rendered-artifact cache. An empty Dir means the
// per-user cache directory; a RedisAddr selects Redis instead of files.
type Cache struct {
	Disabled  bool     `toml:"disabled"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// Serve configures the HTTP API.
type Serve struct {
	Addr string `toml:"addr"`
}

// Duration decodes TOML strings such as "15m".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.Duration.String()), nil }

// Default returns the built-in settings.
func Default() Config {
	return Config{
		GridSize:  snap.DefaultGridSize,
		Threshold: snap.DefaultThreshold,
		History: History{
			Backend: history.BackendMemory,
			Limit:   history.DefaultLimit,
		},
		Cache: Cache{TTL: Duration{24 * time.Hour}},
		Serve: Serve{Addr: ":8080"},
	}
}

// Flags resolves the node and grid switches for a move gesture.
func (s Snap) Flags() snap.Flags {
	return snap.Flags{Shapes: boolOr(s.Shapes, true), Grid: boolOr(s.Grid, true)}
}

// ResizeEnabled reports whether resize-time grid snapping is on. It follows
// the grid switch unless set explicitly.
func (s Snap) ResizeEnabled() bool {
	return boolOr(s.ResizeGrid, boolOr(s.Grid, true))
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// StageRect returns the stage as a world rectangle anchored at the origin.
func (c Config) StageRect() geom.Rect {
	return geom.Rect{Width: c.Stage.Width, Height: c.Stage.Height}
}

// Interaction returns controller options for these settings.
func (c Config) Interaction() interact.Options {
	return interact.Options{
		Snap:       c.Snap.Flags(),
		ResizeSnap: c.Snap.ResizeEnabled(),
		Threshold:  c.Threshold,
		AngleStep:  c.Snap.AngleStep,
	}
}

// ApplyScene fills a scene's grid and stage from these settings where the
// document left them unset.
func (c Config) ApplyScene(sc *scene.Scene, doc scene.Document) {
	if doc.Grid <= 0 {
		sc.Grid = c.GridSize
	}
	if sc.Stage.Width <= 0 && sc.Stage.Height <= 0 {
		sc.Stage = c.StageRect()
	}
}

// HistoryOptions converts the history section for history.Open.
func (c Config) HistoryOptions() history.Options {
	return history.Options{
		Backend:   c.History.Backend,
		Dir:       c.History.Dir,
		RedisAddr: c.History.RedisAddr,
		RedisKey:  c.History.RedisKey,
		Limit:     c.History.Limit,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "snapboard", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "snapboard", "config.toml"), nil
}

// DataDir returns the per-user data directory for the file history backend.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "snapboard")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "snapboard")
	}
	return filepath.Join(os.TempDir(), "snapboard")
}

// Load reads the config file at path, or the default location when path is
// empty, then applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		err := decodeFile(path, &cfg)
		if err != nil && (explicit || !errors.Is(err, errors.ErrCodeFileNotFound)) {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	fillDirs(&cfg)
	return cfg, cfg.Validate()
}

// Decode parses TOML text over the defaults without touching the
// environment.
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := rejectUndecoded(md); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func decodeFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return rejectUndecoded(md)
}

func rejectUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", keys[0].String())
	}
	return nil
}

// applyEnv overrides file values with SNAPBOARD_* variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("SNAPBOARD_GRID_SIZE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "SNAPBOARD_GRID_SIZE")
		}
		cfg.GridSize = f
	}
	if v := os.Getenv("SNAPBOARD_HISTORY_BACKEND"); v != "" {
		cfg.History.Backend = v
	}
	if v := os.Getenv("SNAPBOARD_REDIS_ADDR"); v != "" {
		cfg.History.RedisAddr = v
		if cfg.Cache.RedisAddr == "" {
			cfg.Cache.RedisAddr = v
		}
	}
	if v := os.Getenv("SNAPBOARD_ADDR"); v != "" {
		cfg.Serve.Addr = v
	}
	return nil
}

func fillDirs(cfg *Config) {
	if cfg.History.Backend == history.BackendFile && cfg.History.Dir == "" {
		cfg.History.Dir = filepath.Join(DataDir(), "history")
	}
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.GridSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "grid_size must be positive, got %v", c.GridSize)
	}
	if c.Threshold < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "threshold must not be negative")
	}
	if c.Snap.AngleStep < 0 || c.Snap.AngleStep > 180 {
		return errors.New(errors.ErrCodeInvalidConfig, "snap.angle_step must be within [0, 180]")
	}
	if c.Stage.Width < 0 || c.Stage.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "stage size must not be negative")
	}
	switch c.History.Backend {
	case "", history.BackendMemory, history.BackendFile, history.BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown history backend %q", c.History.Backend)
	}
	if c.History.Limit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "history.limit must not be negative")
	}
	return nil
}
