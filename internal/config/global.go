// Package config handles the global emb configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "emb"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// Environment variables that override the config file.
const (
	EnvEmbeddingsDir = "EMB_EMBEDDINGS_DIR"
	EnvPattern       = "EMB_PATTERN"
	EnvTrainingData  = "EMB_TRAINING_DATA"
	EnvLogLevel      = "EMB_LOG_LEVEL"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *Config

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/emb/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file and applies
// environment overrides and defaults.
// A missing file is not an error.
func LoadGlobalConfig() (*Config, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	cfg, err := LoadFile(GlobalConfigPath())
	if err != nil {
		return nil, err
	}

	globalConfigCache = cfg
	return cfg, nil
}

// LoadFile loads the config at path the same way LoadGlobalConfig does,
// without caching.
func LoadFile(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("%w: parsing %s: %w", ErrInvalidConfig, path, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	cfg.EmbeddingsDir = ExpandPath(cfg.EmbeddingsDir)
	cfg.TrainingData = ExpandPath(cfg.TrainingData)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	for env, field := range map[string]*string{
		EnvEmbeddingsDir: &c.EmbeddingsDir,
		EnvPattern:       &c.Pattern,
		EnvTrainingData:  &c.TrainingData,
		EnvLogLevel:      &c.LogLevel,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// HelpfulConfigMessage explains where the config file lives.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`Tip: Create %s to set defaults:
  mkdir -p %s
  printf 'embeddings_dir: /path/to/embeddings\ntraining_data: /path/to/corpus.txt\n' > %s`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
