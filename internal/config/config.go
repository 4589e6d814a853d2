// Package config provides configuration management for savekeep using Viper.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/spf13/viper"

	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/paths"
	"github.com/thoreinstein/savekeep/pkg/fileutil"
)

// EnvPrefix prefixes environment overrides: SAVEKEEP_LIVE_DIR and so on.
const EnvPrefix = "SAVEKEEP"

// Configuration keys.
const (
	KeyVersion  = "version"
	KeyApp      = "app"
	KeyLiveDir  = "live_dir"
	KeyStoreDir = "store_dir"
)

// Keys lists every configuration key in display order.
var Keys = []string{KeyVersion, KeyApp, KeyLiveDir, KeyStoreDir}

// ErrUnknownKey indicates a key that is not one of Keys.
var ErrUnknownKey = errors.New("unknown config key")

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version" toml:"version"`

	// App names the application whose saves are managed. It picks the
	// default live and store directories.
	App string `mapstructure:"app" yaml:"app" toml:"app"`

	// LiveDir overrides the live save directory.
	LiveDir string `mapstructure:"live_dir" yaml:"live_dir" toml:"live_dir"`

	// StoreDir overrides the backup store root.
	StoreDir string `mapstructure:"store_dir" yaml:"store_dir" toml:"store_dir"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{Version: 1, App: paths.DefaultApp}
}

// ResolveLiveDir returns the live save directory: LiveDir with "~"
// expanded, or the default for App.
func (c *Config) ResolveLiveDir() string {
	if c.LiveDir != "" {
		return filepath.Clean(paths.ExpandHome(c.LiveDir))
	}
	return paths.DefaultLiveDir(c.App)
}

// ResolveStoreDir returns the backup store root: StoreDir with "~"
// expanded, or the default for App.
func (c *Config) ResolveStoreDir() string {
	if c.StoreDir != "" {
		return filepath.Clean(paths.ExpandHome(c.StoreDir))
	}
	return paths.DefaultStoreDir(c.App)
}

// Get returns the value of key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeyVersion:
		return strconv.Itoa(c.Version), nil
	case KeyApp:
		return c.App, nil
	case KeyLiveDir:
		return c.LiveDir, nil
	case KeyStoreDir:
		return c.StoreDir, nil
	default:
		return "", errors.Wrapf(ErrUnknownKey, "%q (valid keys: %v)", key, Keys)
	}
}

// Set assigns value to key.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyVersion:
		v, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "version must be an integer, got %q", value)
		}
		c.Version = v
	case KeyApp:
		c.App = value
	case KeyLiveDir:
		c.LiveDir = value
	case KeyStoreDir:
		c.StoreDir = value
	default:
		return errors.Wrapf(ErrUnknownKey, "%q (valid keys: %v)", key, Keys)
	}
	return nil
}

// ValidKey reports whether key is a configuration key.
func ValidKey(key string) bool {
	return slices.Contains(Keys, key)
}

// Init initializes Viper with default configuration, discarding any
// earlier state. Call this once at application startup before Load.
func Init() {
	viper.Reset()

	// Any supported extension: config.yaml, config.toml, ...
	viper.SetConfigName("config")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault(KeyVersion, d.Version)
	viper.SetDefault(KeyApp, d.App)
	viper.SetDefault(KeyLiveDir, d.LiveDir)
	viper.SetDefault(KeyStoreDir, d.StoreDir)
}

// Load reads and validates the configuration.
// If path is provided, it reads from that specific file, which must exist.
// If path is empty, it searches the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		}
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return &cfg, nil
}

// FileUsed returns the config file Load read, or "" if none.
func FileUsed() string {
	return viper.ConfigFileUsed()
}

// Write saves cfg to path as YAML or TOML depending on the extension.
func Write(path string, cfg *Config) error {
	if errs := Validate(cfg); len(errs) > 0 {
		return errors.Wrap(errs[0], "validating config")
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return fileutil.AtomicWriteStructured(path, cfg, 0o644)
}
