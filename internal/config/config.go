// Package config loads and saves user preferences from
// ~/.personal-assistant/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences and backend credentials.
type Config struct {
	// Supabase backend. The key is the project anon key; it doubles as
	// both the apikey header and the bearer credential.
	SupabaseURL string `yaml:"supabase_url" json:"supabase_url"`
	SupabaseKey string `yaml:"supabase_key" json:"supabase_key"`

	// DataDir holds the per-entity JSON files (tags.json, projects.json,
	// tasks.json, events.json).
	DataDir string `yaml:"data_dir" json:"data_dir"`

	ConfirmReplace bool `yaml:"confirm_replace" json:"confirm_replace"` // require confirmation before wiping remote

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`
	LogFile    string `yaml:"log_file" json:"log_file"`
	LogConsole bool   `yaml:"log_console" json:"log_console"`
}

// DefaultConfig returns default settings.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dataDir := ""
	logPath := ""
	if home != "" {
		dataDir = filepath.Join(home, ".personal-assistant", "data")
		logPath = filepath.Join(home, ".personal-assistant", "logs", "assistant.log")
	}

	return &Config{
		SupabaseURL:    os.Getenv("PA_SUPABASE_URL"),
		SupabaseKey:    os.Getenv("PA_SUPABASE_KEY"),
		DataDir:        getEnv("PA_DATA_DIR", dataDir),
		ConfirmReplace: true,
		LogLevel:       getEnv("PA_LOG_LEVEL", "INFO"),
		LogFile:        getEnv("PA_LOG_FILE", logPath),
		LogConsole:     getEnv("PA_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".personal-assistant", "config.yaml"), nil
}

// Load loads config from ~/.personal-assistant/config.yaml, falling back
// to defaults when the file does not exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the config back to ~/.personal-assistant/config.yaml.
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
