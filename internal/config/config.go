// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Storage backends for listing images.
const (
	BackendNATS       = "nats"
	BackendCloudinary = "cloudinary"
)

// DefaultPlaceholderURL is shown whenever an image path cannot be resolved.
const DefaultPlaceholderURL = "https://placehold.co/800x600?text=No+Image"

// Config holds all configuration values for listr.
type Config struct {
	DataDir    string           `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel   string           `mapstructure:"log_level" yaml:"log_level"`
	LogFile    string           `mapstructure:"log_file" yaml:"log_file"`
	UserID     string           `mapstructure:"user_id" yaml:"user_id"`
	AuthToken  string           `mapstructure:"auth_token" yaml:"auth_token,omitempty"`
	AuthSecret string           `mapstructure:"auth_secret" yaml:"auth_secret,omitempty"`
	Storage    StorageConfig    `mapstructure:"storage" yaml:"storage"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary" yaml:"cloudinary,omitempty"`
}

// StorageConfig selects and configures the image storage backend.
type StorageConfig struct {
	Backend        string `mapstructure:"backend" yaml:"backend"`
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
	PlaceholderURL string `mapstructure:"placeholder_url" yaml:"placeholder_url"`
}

// CloudinaryConfig holds credentials for the cloudinary backend.
type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name" yaml:"cloud_name,omitempty"`
	APIKey    string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	APISecret string `mapstructure:"api_secret" yaml:"api_secret,omitempty"`
	Folder    string `mapstructure:"folder" yaml:"folder,omitempty"`
}

// Default returns the configuration used when no file or env var overrides it.
func Default() *Config {
	return &Config{
		DataDir:  ".listr",
		LogLevel: "info",
		Storage: StorageConfig{
			Backend:        BackendNATS,
			BaseURL:        "nats://listing-images",
			PlaceholderURL: DefaultPlaceholderURL,
		},
		Cloudinary: CloudinaryConfig{Folder: "listings"},
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("listr")

	d := Default()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("user_id", "")
	v.SetDefault("auth_token", "")
	v.SetDefault("auth_secret", "")
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.base_url", d.Storage.BaseURL)
	v.SetDefault("storage.placeholder_url", d.Storage.PlaceholderURL)
	v.SetDefault("cloudinary.cloud_name", "")
	v.SetDefault("cloudinary.api_key", "")
	v.SetDefault("cloudinary.api_secret", "")
	v.SetDefault("cloudinary.folder", d.Cloudinary.Folder)

	// Setup ENV binding with LISTR_ prefix (storage.backend -> LISTR_STORAGE_BACKEND)
	v.SetEnvPrefix("LISTR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"data_dir", "log_level", "log_file", "user_id", "auth_token", "auth_secret",
		"storage.backend", "storage.base_url", "storage.placeholder_url",
		"cloudinary.cloud_name", "cloudinary.api_key", "cloudinary.api_secret", "cloudinary.folder",
	} {
		env := "LISTR_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints that viper cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendNATS:
	case BackendCloudinary:
		if c.Cloudinary.CloudName == "" || c.Cloudinary.APIKey == "" || c.Cloudinary.APISecret == "" {
			return fmt.Errorf("cloudinary backend requires cloud_name, api_key and api_secret")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q (must be nats or cloudinary)", c.Storage.Backend)
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/listr/listr.yml or $XDG_CONFIG_HOME/listr/listr.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "listr", "listr.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "listr", "listr.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "listr.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// 0600: the file may carry cloudinary and token secrets
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
