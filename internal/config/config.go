// Package config loads the shell configuration from a YAML file, the
// environment and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DOCK_DOCK_SPACING.
const EnvPrefix = "DOCK"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Dock   DockConfig   `mapstructure:"dock" yaml:"dock"`
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
}

// DockConfig configures the dock panel of the shell.
type DockConfig struct {
	// Spacing is the handle thickness in cells.
	Spacing int `mapstructure:"spacing" yaml:"spacing"`
	// LayoutFile is restored on start and written on exit when set.
	LayoutFile string `mapstructure:"layout_file" yaml:"layout_file"`
	// StrictLayout fails the restore on unknown panel ids.
	StrictLayout bool `mapstructure:"strict_layout" yaml:"strict_layout"`
	// Theme is "light", "dark", or empty to detect from the terminal.
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults initializes default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Dock --
	v.SetDefault("dock.spacing", 1)
	v.SetDefault("dock.layout_file", "")
	v.SetDefault("dock.strict_layout", false)
	v.SetDefault("dock.theme", "")

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "dock")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)
}

// BindEnv makes DOCK_<SECTION>_<KEY> override the matching key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration with every default applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		panic(fmt.Sprintf("config: defaults do not validate: %v", err))
	}
	return cfg
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Dock.Spacing < 0 {
		return fmt.Errorf("%w: dock.spacing must not be negative", ErrInvalid)
	}
	switch strings.ToLower(c.Dock.Theme) {
	case "", "light", "dark", "breakers", "mariana":
	default:
		return fmt.Errorf("%w: dock.theme %q", ErrInvalid, c.Dock.Theme)
	}
	return c.Logger.Validate()
}

// Validate checks the logger settings.
func (l *LoggerConfig) Validate() error {
	switch l.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logger.format must be console or json, got %q", ErrInvalid, l.Format)
	}
	if l.MaxSize < 0 || l.MaxBackups < 0 || l.MaxAge < 0 {
		return fmt.Errorf("%w: logger rotation limits must not be negative", ErrInvalid)
	}
	return nil
}
