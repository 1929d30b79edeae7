// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package boot assembles a ready-to-use [port.Host] from configuration:
// the logger, every operation family, the startup flags and the history.
package boot

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: PORT_LOG_LEVEL sets log.level.
const EnvPrefix = "PORT"

// Config holds host configuration.
type Config struct {
	InitialURL string        `mapstructure:"initial_url"`
	Locale     string        `mapstructure:"locale"`
	Storage    StorageConfig `mapstructure:"storage"`
	Runtime    RuntimeConfig `mapstructure:"runtime"`
	Log        LogConfig     `mapstructure:"log"`
}

// StorageConfig selects the storage backend. An empty Path keeps items in
// memory; CacheSize > 0 fronts the backend with an LRU.
type StorageConfig struct {
	Path      string `mapstructure:"path"`
	CacheSize int    `mapstructure:"cache_size"`
}

// RuntimeConfig sizes the runtime's queues.
type RuntimeConfig struct {
	ResultBuffer      int `mapstructure:"result_buffer"`
	TraversalCapacity int `mapstructure:"traversal_capacity"`
}

// LogConfig selects the log level (debug, info, warn, error) and format
// (text, json).
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults installs the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("initial_url", "http://localhost/")
	v.SetDefault("locale", "en-US")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.cache_size", 0)
	v.SetDefault("runtime.result_buffer", 64)
	v.SetDefault("runtime.traversal_capacity", 16)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("config", "")
}

// LoadConfig reads configuration into a Config. The optional config file is
// named by the "config" key (PORT_CONFIG or a bound --config flag); env vars
// with prefix PORT_ override both file and defaults.
func LoadConfig(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.InitialURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("initial_url %q must be an absolute URL", c.InitialURL)
	}
	if c.Storage.CacheSize < 0 {
		return errors.New("storage.cache_size must not be negative")
	}
	if c.Runtime.ResultBuffer < 0 {
		return errors.New("runtime.result_buffer must not be negative")
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q: want text or json", c.Log.Format)
	}
	return nil
}
