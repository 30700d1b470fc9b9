// Package config loads runtime settings from an optional TOML file, then applies
// GRIDPATH_* environment overrides (a .env file in the working directory is read first).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/gridpath/constants"
	"github.com/lixenwraith/gridpath/engine"
	"github.com/lixenwraith/gridpath/navigation"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Grid     GridConfig     `toml:"grid"`
	Movement MovementConfig `toml:"movement"`
	Reveal   RevealConfig   `toml:"reveal"`
	Audio    AudioConfig    `toml:"audio"`
	Log      LogConfig      `toml:"log"`
	Store    StoreConfig    `toml:"store"`
	Server   ServerConfig   `toml:"server"`
}

type GridConfig struct {
	Size int `toml:"size"`
}

type MovementConfig struct {
	AllowDiagonal      bool `toml:"allow_diagonal"`
	AllowCornerCutting bool `toml:"allow_corner_cutting"`
}

type RevealConfig struct {
	IntervalMs int    `toml:"interval_ms"`
	Order      string `toml:"order"`
}

type AudioConfig struct {
	Enabled bool `toml:"enabled"`
}

type LogConfig struct {
	Level string `toml:"level"`
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir"`
}

type StoreConfig struct {
	Path string `toml:"path"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Grid:   GridConfig{Size: constants.DefaultGridSize},
		Reveal: RevealConfig{IntervalMs: int(constants.RevealInterval / time.Millisecond), Order: "goal-first"},
		Audio:  AudioConfig{Enabled: true},
		Log:    LogConfig{Level: "info", Dir: "logs"},
		Store:  StoreConfig{Path: filepath.Join("data", "gridpath.db")},
		Server: ServerConfig{Addr: ":5175"},
	}
}

// Load reads path over the defaults, applies environment overrides and validates
// An empty path or a missing file leaves the defaults in place
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg as TOML, creating the parent directory
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// applyEnv overlays GRIDPATH_* variables read through lookup
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalid, key, err)
		}
		*dst = n
		return nil
	}
	flag := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean: %v", ErrInvalid, key, err)
		}
		*dst = b
		return nil
	}

	if err := num("GRIDPATH_GRID_SIZE", &c.Grid.Size); err != nil {
		return err
	}
	if err := flag("GRIDPATH_ALLOW_DIAGONAL", &c.Movement.AllowDiagonal); err != nil {
		return err
	}
	if err := flag("GRIDPATH_ALLOW_CORNER_CUTTING", &c.Movement.AllowCornerCutting); err != nil {
		return err
	}
	if err := num("GRIDPATH_REVEAL_INTERVAL_MS", &c.Reveal.IntervalMs); err != nil {
		return err
	}
	if err := flag("GRIDPATH_AUDIO", &c.Audio.Enabled); err != nil {
		return err
	}
	if err := flag("GRIDPATH_DEBUG", &c.Log.Debug); err != nil {
		return err
	}
	str("GRIDPATH_REVEAL_ORDER", &c.Reveal.Order)
	str("GRIDPATH_LOG_LEVEL", &c.Log.Level)
	str("GRIDPATH_LOG_DIR", &c.Log.Dir)
	str("GRIDPATH_STORE_PATH", &c.Store.Path)
	str("GRIDPATH_SERVER_ADDR", &c.Server.Addr)
	return nil
}

// Validate checks ranges and enumerations
func (c Config) Validate() error {
	if c.Grid.Size < constants.MinGridSize {
		return fmt.Errorf("%w: grid.size %d below minimum %d", ErrInvalid, c.Grid.Size, constants.MinGridSize)
	}
	if c.Reveal.IntervalMs <= 0 {
		return fmt.Errorf("%w: reveal.interval_ms must be positive, got %d", ErrInvalid, c.Reveal.IntervalMs)
	}
	if _, err := engine.ParseRevealOrder(c.Reveal.Order); err != nil {
		return fmt.Errorf("%w: reveal.order: %v", ErrInvalid, err)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("%w: store.path is empty", ErrInvalid)
	}
	return nil
}

// Session converts the settings into a session configuration
// Clock and Logger are left for the caller
func (c Config) Session() engine.SessionConfig {
	order, _ := engine.ParseRevealOrder(c.Reveal.Order)
	return engine.SessionConfig{
		Size: c.Grid.Size,
		Rules: navigation.Rules{
			AllowDiagonal:      c.Movement.AllowDiagonal,
			AllowCornerCutting: c.Movement.AllowCornerCutting,
		},
		RevealInterval: time.Duration(c.Reveal.IntervalMs) * time.Millisecond,
		RevealOrder:    order,
	}
}
