package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// configFileName is the config file looked up under the config directory.
const configFileName = "config.toml"

// Config holds user defaults loaded from the TOML config file. Flags
// override config values, config values override built-in defaults.
type Config struct {
	// Formats are the default render formats, e.g. ["svg", "png"].
	Formats []string `toml:"formats"`

	// View is the default render view, "route" or "nodelink".
	View string `toml:"view"`

	// Width and Height set the default route plot canvas in points.
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	// Parallelism is the default solver worker count. Zero means one
	// worker per CPU.
	Parallelism int `toml:"parallelism"`

	// Timeout bounds each solve, e.g. "30s". Zero means no limit.
	Timeout duration `toml:"timeout"`

	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
}

// CacheConfig configures the in-memory result cache used by the server.
type CacheConfig struct {
	// MaxEntries caps the cache size. Zero selects the built-in default.
	MaxEntries int `toml:"max_entries"`

	// TTL is the lifetime of cached solutions, e.g. "1h". Zero selects
	// the built-in default.
	TTL duration `toml:"ttl"`
}

// duration decodes TOML strings like "30s" or "2m" into a time.Duration.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// defaultConfig returns the built-in defaults applied when no config file
// exists.
func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
	}
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file is not an error; a missing
// explicit file is.
func (c *CLI) loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			c.Logger.Debug("could not resolve config directory", "error", err)
			return cfg, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}
