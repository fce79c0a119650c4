// Package config loads the tool defaults from a TOML file: naming
// convention, tier suffixes, log directory and log level. Command-line
// flags override whatever the file provides.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pion/logging"

	"github.com/backkem/aclgroups/pkg/naming"
)

// Suffixes is the per-tier suffix section of the config file. An empty
// value disables the tier by default.
type Suffixes struct {
	Read        string `toml:"read"`
	Write       string `toml:"write"`
	Modify      string `toml:"modify"`
	FullControl string `toml:"full_control"`
}

// Config is the tool configuration.
type Config struct {
	// Prefix and Delimiter form the naming convention.
	Prefix    string `toml:"prefix"`
	Delimiter string `toml:"delimiter"`

	// Description is the default description for created groups.
	Description string `toml:"description"`

	Suffixes Suffixes `toml:"suffixes"`

	// LogDir receives discovery log files.
	LogDir string `toml:"log_dir"`

	// LogLevel is one of disabled, error, warn, info, debug, trace.
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Prefix:    naming.DefaultPrefix,
		Delimiter: naming.DefaultDelimiter,
		Suffixes: Suffixes{
			Read:        "R",
			Write:       "W",
			Modify:      "M",
			FullControl: "F",
		},
		LogDir:   ".",
		LogLevel: "info",
	}
}

// Load reads a TOML file over the defaults. A missing path returns the
// defaults unchanged; a present but unparsable file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Convention returns the configured naming convention.
func (c Config) Convention() naming.Convention {
	return naming.Convention{Prefix: c.Prefix, Delimiter: c.Delimiter}
}

// TierSuffixes returns the configured default suffix set.
func (c Config) TierSuffixes() naming.TierSuffixes {
	return naming.TierSuffixes{
		Read:        c.Suffixes.Read,
		Write:       c.Suffixes.Write,
		Modify:      c.Suffixes.Modify,
		FullControl: c.Suffixes.FullControl,
	}
}

// LoggerFactory builds a logger factory honoring the configured level.
func (c Config) LoggerFactory() (logging.LoggerFactory, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	factory := logging.NewDefaultLoggerFactory()
	factory.DefaultLogLevel = level
	return factory, nil
}

func parseLevel(s string) (logging.LogLevel, error) {
	switch s {
	case "", "info":
		return logging.LogLevelInfo, nil
	case "disabled":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn":
		return logging.LogLevelWarn, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", s)
	}
}
