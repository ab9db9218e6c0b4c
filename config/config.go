// Package config loads tuning for the spatial core from layered TOML files
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/lixenwraith/spatial-shell/adaptive"
	"github.com/lixenwraith/spatial-shell/gaze"
	"github.com/lixenwraith/spatial-shell/parameter"
	"github.com/lixenwraith/spatial-shell/pinned"
	"github.com/lixenwraith/spatial-shell/scroll"
)

const (
	appName        = "spatial-shell"
	configFileName = "config.toml"
	localFileName  = "spatial-shell.toml"
)

// ErrInvalid is wrapped by every Validate failure
var ErrInvalid = errors.New("invalid config")

// Config is the complete tuning of the core and the sandbox
type Config struct {
	Engine   EngineConfig    `koanf:"engine"`
	Haptics  HapticsConfig   `koanf:"haptics"`
	Gaze     gaze.Config     `koanf:"gaze"`
	Scroll   scroll.Config   `koanf:"scroll"`
	Adaptive adaptive.Config `koanf:"adaptive"`
	Menu     pinned.Config   `koanf:"menu"`
}

// EngineConfig holds frame loop settings
type EngineConfig struct {
	TickInterval time.Duration `koanf:"tick_interval"`
}

// HapticsConfig holds audio preview settings
type HapticsConfig struct {
	Muted bool `koanf:"muted"`
}

// Default returns the parameter defaults
func Default() *Config {
	return &Config{
		Engine:   EngineConfig{TickInterval: parameter.TickInterval},
		Haptics:  HapticsConfig{Muted: true},
		Gaze:     gaze.DefaultConfig(),
		Scroll:   scroll.DefaultConfig(),
		Adaptive: adaptive.DefaultConfig(),
		Menu:     pinned.DefaultConfig(),
	}
}

// DefaultPaths returns the optional config files in priority order, last wins
func DefaultPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, configFileName),
		localFileName,
	}
}

// Load layers defaults, the optional default paths and the required explicit paths, then validates
func Load(paths ...string) (*Config, error) {
	return LoadFrom(DefaultPaths(), paths...)
}

// LoadFrom layers defaults, optional files that exist and required files
func LoadFrom(optional []string, required ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range optional {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	for _, path := range required {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the core cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.Engine.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: engine.tick_interval must be positive, got %v", ErrInvalid, c.Engine.TickInterval))
	}
	if c.Menu.ScrollWrapLength <= 0 {
		errs = append(errs, fmt.Errorf("%w: menu.scroll_wrap_length must be positive, got %v", ErrInvalid, c.Menu.ScrollWrapLength))
	}
	if c.Menu.MaxButtonCount < parameter.MenuActiveToolOrder+2 {
		errs = append(errs, fmt.Errorf("%w: menu.max_button_count must be at least %d, got %d",
			ErrInvalid, parameter.MenuActiveToolOrder+2, c.Menu.MaxButtonCount))
	}
	if c.Scroll.LockInDistance <= 0 {
		errs = append(errs, fmt.Errorf("%w: scroll.lock_in_distance must be positive, got %v", ErrInvalid, c.Scroll.LockInDistance))
	}
	if c.Adaptive.RepositionDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: adaptive.reposition_duration must be positive, got %v", ErrInvalid, c.Adaptive.RepositionDuration))
	}
	if el := c.Adaptive.Element; el.AllowedMinDistance >= el.AllowedMaxDistance {
		errs = append(errs, fmt.Errorf("%w: adaptive.element.allowed_min_distance %v must be below allowed_max_distance %v",
			ErrInvalid, el.AllowedMinDistance, el.AllowedMaxDistance))
	}

	return errors.Join(errs...)
}
