package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	AppName               = "linefile"
	DefaultConfigFileName = "linefile.toml"
	DefaultLogLevel       = "info"
	DefaultFileMode       = 0o644
	DefaultJobs           = 4
	DefaultColor          = ColorAuto
)

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger LoggerConfig `toml:"logger"`
	Write  WriteConfig  `toml:"write"`
	Output OutputConfig `toml:"output"`

	// Undecoded lists keys of the loaded file that no field consumed.
	Undecoded []string `toml:"-"`
}

// LoggerConfig configures internal/logger.
type LoggerConfig struct {
	LogLevel    string `toml:"log_level"`
	LogFilePath string `toml:"log_file"` // empty discards, "-" is stderr
}

// WriteConfig controls how edited files are written.
type WriteConfig struct {
	FileMode uint32 `toml:"file_mode"` // mode for files that do not exist yet
	Jobs     int    `toml:"jobs"`      // files edited concurrently by a plan
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	Color string `toml:"color"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			LogLevel: DefaultLogLevel,
		},
		Write: WriteConfig{
			FileMode: DefaultFileMode,
			Jobs:     DefaultJobs,
		},
		Output: OutputConfig{
			Color: DefaultColor,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/linefile/linefile.toml, or "" if the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// Load starts from the defaults and overlays the TOML file at path.
// A missing file is not an error. Invalid values are reset to defaults.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("error checking config file '%s': %w", path, err)
	}

	metadata, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return NewDefaultConfig(), fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	for _, key := range metadata.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, key.String())
	}

	cfg.validate()
	return cfg, nil
}

// FileMode returns the configured mode for new files.
func (c *Config) FileMode() fs.FileMode {
	return fs.FileMode(c.Write.FileMode).Perm()
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Write.FileMode == 0 || c.Write.FileMode > 0o777 {
		c.Write.FileMode = defaults.Write.FileMode
	}
	if c.Write.Jobs <= 0 {
		c.Write.Jobs = defaults.Write.Jobs
	}
	switch strings.ToLower(c.Output.Color) {
	case ColorAuto, ColorAlways, ColorNever:
		c.Output.Color = strings.ToLower(c.Output.Color)
	default:
		c.Output.Color = defaults.Output.Color
	}
}
