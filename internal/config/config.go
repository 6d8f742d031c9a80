// Package config loads envswitch settings.
//
// Precedence, highest first: command-line flags, ENVSWITCH_* environment
// variables, the config file, built-in defaults. A missing config file is
// fine; a broken one is ErrInvalidConfig.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gurisko/envswitch/internal/paths"
	"github.com/gurisko/envswitch/internal/registry"
	"github.com/gurisko/envswitch/internal/shell"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrInvalidConfig indicates an unreadable config file or a bad setting
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix is prepended to every environment override
const EnvPrefix = "ENVSWITCH"

// Config holds the resolved settings
type Config struct {
	RegistryPath string    `mapstructure:"registry_path"`
	HistoryLimit int       `mapstructure:"history_limit"`
	Platform     string    `mapstructure:"platform"`
	Log          LogConfig `mapstructure:"log"`

	// ConfigFile is the file that was read, empty if none
	ConfigFile string `mapstructure:"-"`
}

// LogConfig controls the front end logger
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FlagBindings maps config keys to flag names on the set passed to Load.
var FlagBindings = map[string]string{
	"registry_path": "registry",
	"platform":      "shell",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("registry_path", paths.DefaultRegistryPath())
	v.SetDefault("history_limit", registry.DefaultHistoryLimit)
	v.SetDefault("platform", "auto")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// Load resolves the configuration. configFile may be empty to use the
// default location. flags may be nil; flags that were set override everything.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(paths.DefaultConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case configFile != "" && errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("%w: config file %s does not exist", ErrInvalidConfig, configFile)
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if flags != nil {
		for key, name := range FlagBindings {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if expanded, err := paths.Expand(cfg.RegistryPath); err == nil {
		cfg.RegistryPath = expanded
	}
	return &cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RegistryPath) == "" {
		return fmt.Errorf("%w: registry_path must not be empty", ErrInvalidConfig)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("%w: history_limit must be positive, got %d", ErrInvalidConfig, c.HistoryLimit)
	}
	if _, err := shell.ParsePlatform(c.Platform); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format must be console or json, got %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// ShellPlatform returns the configured platform resolved to a concrete value
func (c *Config) ShellPlatform() shell.Platform {
	p, _ := shell.ParsePlatform(c.Platform)
	return p
}
