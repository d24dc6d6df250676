package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidConfig is returned when a config value cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Defaults for unset keys.
const (
	DefaultPattern   = "*.emb"
	DefaultPrecision = 4
	DefaultLogLevel  = "info"
)

// ValidLogLevels lists the supported log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Config is the effective emb configuration.
type Config struct {
	EmbeddingsDir string `yaml:"embeddings_dir,omitempty" json:"embeddings_dir"` // Where ensemble members live
	Pattern       string `yaml:"pattern,omitempty" json:"pattern"`               // Glob for ensemble members
	TrainingData  string `yaml:"training_data,omitempty" json:"training_data"`   // Corpus file (text or PDF)
	Precision     int    `yaml:"precision,omitempty" json:"precision"`
	LogLevel      string `yaml:"log_level,omitempty" json:"log_level"`
}

// Default returns a config with every key at its default.
func Default() Config {
	return Config{
		Pattern:   DefaultPattern,
		Precision: DefaultPrecision,
		LogLevel:  DefaultLogLevel,
	}
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Pattern == "" {
		c.Pattern = def.Pattern
	}
	if c.Precision == 0 {
		c.Precision = def.Precision
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate checks every key.
func (c *Config) Validate() error {
	if c.Precision < 0 {
		return fmt.Errorf("%w: precision must be positive, got %d", ErrInvalidConfig, c.Precision)
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("%w: pattern %q: %w", ErrInvalidConfig, c.Pattern, err)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// EmbeddingsGlob joins EmbeddingsDir and Pattern.
func (c *Config) EmbeddingsGlob() string {
	if c.EmbeddingsDir == "" {
		return c.Pattern
	}
	return filepath.Join(c.EmbeddingsDir, c.Pattern)
}

// ParseLogLevel maps a log_level value onto a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log_level %q (valid: %v)", ErrInvalidConfig, s, ValidLogLevels)
	}
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
