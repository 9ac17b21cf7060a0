// Package config provides configuration management for the rijndael CLI
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Davincible/rijndael/pkg/storage"
	json "github.com/goccy/go-json"
)

// Output encodings accepted in DefaultSettings.Encoding
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

// Config represents the main configuration structure
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	Security SecurityConfig  `json:"security"`
	UI       UIConfig        `json:"ui"`
	Storage  StorageConfig   `json:"storage"`
}

// DefaultSettings contains default values for common operations
type DefaultSettings struct {
	Encoding string `json:"encoding"` // hex or base64
	Trace    bool   `json:"trace"`    // print round trace with encrypt/decrypt
}

// SecurityConfig contains security-related settings
type SecurityConfig struct {
	MinPasswordLength int  `json:"min_password_length"`
	KDFIterations     int  `json:"kdf_iterations"` // PBKDF2 rounds for key files
	WipeMemory        bool `json:"wipe_memory"`
}

// UIConfig contains user interface settings
type UIConfig struct {
	UseColor  bool   `json:"use_color"`
	Verbosity string `json:"verbosity"` // quiet, normal, verbose
}

// StorageConfig contains key file settings
type StorageConfig struct {
	DefaultKeyFile string `json:"default_key_file"`
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager loads the configuration from the default location. A
// missing file yields the defaults; nothing is written to disk.
func NewConfigManager() (*ConfigManager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerAt(configPath)
}

// NewConfigManagerAt loads the configuration stored at path.
func NewConfigManagerAt(path string) (*ConfigManager, error) {
	cm := &ConfigManager{configPath: path}

	if err := cm.LoadConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cm.config = DefaultConfig()
	}

	return cm, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			Encoding: EncodingHex,
			Trace:    false,
		},
		Security: SecurityConfig{
			MinPasswordLength: 8,
			KDFIterations:     storage.DefaultIterations,
			WipeMemory:        true,
		},
		UI: UIConfig{
			UseColor:  true,
			Verbosity: "normal",
		},
		Storage: StorageConfig{
			DefaultKeyFile: "~/.rijndael/key.json",
		},
	}
}

// Validate checks the values a user may have edited by hand.
func (c *Config) Validate() error {
	switch c.Defaults.Encoding {
	case EncodingHex, EncodingBase64:
	default:
		return fmt.Errorf("unknown encoding %q (want %s or %s)", c.Defaults.Encoding, EncodingHex, EncodingBase64)
	}
	if c.Security.KDFIterations < storage.MinIterations || c.Security.KDFIterations > storage.MaxIterations {
		return fmt.Errorf("kdf_iterations must be between %d and %d, got %d",
			storage.MinIterations, storage.MaxIterations, c.Security.KDFIterations)
	}
	if c.Security.MinPasswordLength < 1 {
		return fmt.Errorf("min_password_length must be positive, got %d", c.Security.MinPasswordLength)
	}
	switch c.UI.Verbosity {
	case "quiet", "normal", "verbose":
	default:
		return fmt.Errorf("unknown verbosity %q", c.UI.Verbosity)
	}
	return nil
}

// LoadConfig loads the configuration from disk
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cm.configPath, err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// Path returns the file the configuration is read from.
func (cm *ConfigManager) Path() string {
	return cm.configPath
}

// KeyFilePath returns the default key file with a leading ~ expanded.
func (cm *ConfigManager) KeyFilePath() (string, error) {
	return ExpandHome(cm.config.Storage.DefaultKeyFile)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	if customPath := os.Getenv("RIJNDAEL_CONFIG"); customPath != "" {
		return customPath, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "rijndael", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "rijndael", "config.json"), nil
}
