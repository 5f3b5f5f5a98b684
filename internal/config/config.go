// Package config handles loading and saving user configuration for pokedex.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/f3rmion/pokedex/internal/dex"
	"github.com/f3rmion/pokedex/internal/pokeapi"
)

// APIConfig holds upstream PokeAPI settings.
type APIConfig struct {
	// BaseURL is the API root, without the trailing resource path.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// Timeout bounds each HTTP request.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	// MaxRandomID is the highest id the random action picks.
	MaxRandomID int `mapstructure:"max_random_id" yaml:"max_random_id"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	// Sprites enables sprite art; names are shown either way.
	Sprites bool `mapstructure:"sprites" yaml:"sprites"`
	// SpriteWidth is the sprite art width in terminal cells.
	SpriteWidth int `mapstructure:"sprite_width" yaml:"sprite_width"`
	// BannerFont is an optional TrueType font for the name banner.
	BannerFont string `mapstructure:"banner_font" yaml:"banner_font"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level" yaml:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format" yaml:"format"`
	// File receives log output; the TUI owns stdout and stderr.
	File string `mapstructure:"file" yaml:"file"`
}

// Config is the top-level application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:     pokeapi.DefaultBaseURL,
			Timeout:     10 * time.Second,
			MaxRandomID: dex.DefaultMaxRandomID,
		},
		UI: UIConfig{
			Sprites:     true,
			SpriteWidth: 32,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   DefaultLogFile(),
		},
	}
}

// Validate checks all configuration invariants.
func (c Config) Validate() error {
	var errs []string

	if err := validateAPI(c.API); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateUI(c.UI); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateAPI(a APIConfig) error {
	var errs []string
	u, err := url.Parse(a.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("api.base_url must be an absolute http(s) URL, got %q", a.BaseURL))
	}
	if a.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("api.timeout must be positive, got %s", a.Timeout))
	}
	if a.MaxRandomID < 1 {
		errs = append(errs, fmt.Sprintf("api.max_random_id must be >= 1, got %d", a.MaxRandomID))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateUI(u UIConfig) error {
	if u.SpriteWidth < 8 || u.SpriteWidth > 96 {
		return fmt.Errorf("ui.sprite_width must be 8-96, got %d", u.SpriteWidth)
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from path (when non-empty), applies POKEDEX_
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("POKEDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout.String())
	v.SetDefault("api.max_random_id", d.API.MaxRandomID)

	v.SetDefault("ui.sprites", d.UI.Sprites)
	v.SetDefault("ui.sprite_width", d.UI.SpriteWidth)
	v.SetDefault("ui.banner_font", d.UI.BannerFont)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
}

// Save writes cfg as YAML to path.
func Save(path string, cfg Config) error {
	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pokedex"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pokedex"), nil
}

// DefaultConfigFile is config.yaml inside GetConfigDir, or "" when no home
// directory can be found.
func DefaultConfigFile() string {
	dir, err := GetConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// DefaultLogFile places the log under XDG_STATE_HOME, falling back to
// ~/.local/state, then the temp directory.
func DefaultLogFile() string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "pokedex", "pokedex.log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "pokedex", "pokedex.log")
	}
	return filepath.Join(os.TempDir(), "pokedex.log")
}
