/*
Package config manages TOML config for the zhconv binaries.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Convert ConvertConfig `toml:"convert"`
	Dict    DictConfig    `toml:"dict"`
}

// ConvertConfig has conversion related options.
type ConvertConfig struct {
	DefaultProfile string `toml:"default_profile"`
	Workers        int    `toml:"workers"`
}

// DictConfig holds dictionary artifact options.
type DictConfig struct {
	Artifact string `toml:"artifact"`
	DataDir  string `toml:"data_dir"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			DefaultProfile: "s2t",
			Workers:        0, // one per CPU
		},
		Dict: DictConfig{},
	}
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "zhconv", "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: ~/.config/zhconv/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string) {
	if customConfigPath != "" {
		config, err := LoadConfig(customConfigPath)
		if err != nil {
			log.Warnf("Failed to load config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Debugf("Loaded config from custom path: %s", customConfigPath)
			return config, customConfigPath
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), ""
	}
	if _, err := os.Stat(defaultPath); err != nil {
		return DefaultConfig(), ""
	}
	config, err := LoadConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load config at %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// LoadConfig loads from a TOML file, overlaying defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves into a TOML file, creating the directory if needed.
func SaveConfig(config *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(config)
}
