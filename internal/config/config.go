// Package config loads the reactiontime YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"

	reactiontime "github.com/daiboyi110/ReactionTime"
)

// Config holds all reactiontime configuration.
type Config struct {
	Trial     TrialConfig     `yaml:"trial"`
	Playfield PlayfieldConfig `yaml:"playfield"`
	Store     StoreConfig     `yaml:"store"`
	Runtime   RuntimeConfig   `yaml:"runtime"`
	UI        UIConfig        `yaml:"ui"`
	Logging   LoggingConfig   `yaml:"log"`
}

// TrialConfig configures trial timing. Durations use time.ParseDuration syntax.
type TrialConfig struct {
	Mode          string `yaml:"mode"` // simple, reach, choice, go-no-go
	MinDelay      string `yaml:"min_delay"`
	MaxDelay      string `yaml:"max_delay"`
	CycleInterval string `yaml:"cycle_interval"`
	MinCycles     int    `yaml:"min_cycles"`
	MaxCycles     int    `yaml:"max_cycles"`
	AutoRestart   bool   `yaml:"auto_restart"`
}

// PlayfieldConfig sizes the REACH playfield in abstract units.
type PlayfieldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	ReachDistance float64 `yaml:"reach_distance"`
	TargetSize    float64 `yaml:"target_size"`
}

// StoreConfig selects where statistics live.
type StoreConfig struct {
	Backend string `yaml:"backend"` // memory, json, yaml, sqlite
	Path    string `yaml:"path"`
}

type RuntimeConfig struct {
	TickRate         string `yaml:"tick_rate"`
	MaxEventsPerTick int    `yaml:"max_events_per_tick"`
}

type UIConfig struct {
	Language string `yaml:"language"` // en, zh
	NoColor  bool   `yaml:"no_color"`
}

// LoggingConfig configures logging. An empty File disables logging, since
// the terminal belongs to the UI.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// ValidBackends lists the supported store backends.
var ValidBackends = []string{"memory", "json", "yaml", "sqlite"}

var validLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	d := reactiontime.DefaultConfig()
	return &Config{
		Trial: TrialConfig{
			Mode:          d.Mode.String(),
			MinDelay:      d.MinDelay.String(),
			MaxDelay:      d.MaxDelay.String(),
			CycleInterval: d.CycleInterval.String(),
			MinCycles:     d.MinCycles,
			MaxCycles:     d.MaxCycles,
		},
		Playfield: PlayfieldConfig{
			Width:         d.Playfield.Width,
			Height:        d.Playfield.Height,
			ReachDistance: d.ReachDistance,
			TargetSize:    d.TargetSize,
		},
		Store: StoreConfig{
			Backend: "json",
			Path:    filepath.Join(DefaultDir(), "stats.json"),
		},
		Runtime: RuntimeConfig{
			TickRate:         "1ms",
			MaxEventsPerTick: 1000,
		},
		UI: UIConfig{
			Language: "en",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultDir is where the config file and statistics live unless told otherwise.
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "reactiontime")
	}
	return ".reactiontime"
}

// DefaultPath is the config file read when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load loads configuration from a YAML file over the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults if the config file doesn't exist
	case err != nil:
		return nil, goerr.Wrap(err, "failed to read config", goerr.V("path", path))
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, goerr.Wrap(err, "failed to parse config", goerr.V("path", path))
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid config", goerr.V("path", path))
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create config directory", goerr.V("dir", dir))
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return goerr.Wrap(err, "failed to write config", goerr.V("path", path))
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("REACTIONTIME_STORE"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("REACTIONTIME_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("REACTIONTIME_LANG"); v != "" {
		c.UI.Language = v
	}
	if os.Getenv("NO_COLOR") != "" {
		c.UI.NoColor = true
	}
}

// Normalize lower-cases enumerations and fills blanks with defaults.
func (c *Config) Normalize() {
	d := DefaultConfig()

	c.Trial.Mode = strings.ToLower(strings.TrimSpace(c.Trial.Mode))
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	if c.Trial.Mode == "" {
		c.Trial.Mode = d.Trial.Mode
	}
	if c.Store.Backend == "" {
		c.Store.Backend = d.Store.Backend
	}
	if c.Store.Path == "" && c.Store.Backend != "memory" {
		c.Store.Path = filepath.Join(DefaultDir(), "stats."+storeExt(c.Store.Backend))
	}
	if c.Runtime.TickRate == "" {
		c.Runtime.TickRate = d.Runtime.TickRate
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.UI.Language == "" {
		c.UI.Language = d.UI.Language
	}
}

func storeExt(backend string) string {
	if backend == "sqlite" {
		return "db"
	}
	return backend
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidBackends, c.Store.Backend) {
		return fmt.Errorf("invalid store backend: %s (valid: %v)", c.Store.Backend, ValidBackends)
	}
	if c.Store.Backend != "memory" && c.Store.Path == "" {
		return fmt.Errorf("store backend %s needs a path", c.Store.Backend)
	}
	if !slices.Contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, validLevels)
	}
	if _, err := c.GetTickRate(); err != nil {
		return err
	}
	if c.Runtime.MaxEventsPerTick < 0 {
		return fmt.Errorf("max_events_per_tick must not be negative")
	}
	if _, err := c.TrialConfig(); err != nil {
		return err
	}
	return nil
}

// GetTickRate returns the runtime tick rate.
func (c *Config) GetTickRate() (time.Duration, error) {
	d, err := time.ParseDuration(c.Runtime.TickRate)
	if err != nil {
		return 0, fmt.Errorf("invalid tick_rate %q: %w", c.Runtime.TickRate, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("tick_rate must be positive, got %s", d)
	}
	return d, nil
}

// TrialConfig converts the trial and playfield sections into the machine's
// configuration and validates it.
func (c *Config) TrialConfig() (reactiontime.Config, error) {
	mode, err := reactiontime.ParseMode(c.Trial.Mode)
	if err != nil {
		return reactiontime.Config{}, err
	}

	var durations [3]time.Duration
	for i, s := range []string{c.Trial.MinDelay, c.Trial.MaxDelay, c.Trial.CycleInterval} {
		if s == "" {
			continue
		}
		if durations[i], err = time.ParseDuration(s); err != nil {
			return reactiontime.Config{}, fmt.Errorf("%w: %q: %w", reactiontime.ErrInvalidConfig, s, err)
		}
	}

	tc := reactiontime.Config{
		MinDelay:      durations[0],
		MaxDelay:      durations[1],
		CycleInterval: durations[2],
		MinCycles:     c.Trial.MinCycles,
		MaxCycles:     c.Trial.MaxCycles,
		ReachDistance: c.Playfield.ReachDistance,
		TargetSize:    c.Playfield.TargetSize,
		Playfield:     reactiontime.Bounds{Width: c.Playfield.Width, Height: c.Playfield.Height},
		AutoRestart:   c.Trial.AutoRestart,
		Mode:          mode,
	}
	if err := tc.Validate(); err != nil {
		return reactiontime.Config{}, err
	}
	return tc, nil
}
