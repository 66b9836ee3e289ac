// Package config provides configuration management for hubgrab.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPort is the port hubgrab listens on when none is configured.
const DefaultPort = 45678

// Config represents the daemon configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Tools   ToolsConfig   `yaml:"tools"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServiceConfig contains service-level settings.
type ServiceConfig struct {
	Port     int    `yaml:"port"`
	CloneDir string `yaml:"clone_dir"`
	DataDir  string `yaml:"data_dir"`
}

// ToolsConfig names the external commands hubgrab drives.
type ToolsConfig struct {
	Git    string `yaml:"git"`
	Editor string `yaml:"editor"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	Level  string   `yaml:"level"`
	Format string   `yaml:"format"`
	Output []string `yaml:"output"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Port:     DefaultPort,
			CloneDir: DefaultCloneDir(),
			DataDir:  DefaultDataDir(),
		},
		Tools: ToolsConfig{
			Git:    "git",
			Editor: "code",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"console"},
		},
	}
}

// DefaultCloneDir returns the default base directory for clones.
func DefaultCloneDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Desktop")
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "hubgrab")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".hubgrab")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDataDir(), "config.yaml")
}

// Load loads configuration from a file, falling back to defaults when the
// file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand environment variables in the config
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.Service.CloneDir = expandTilde(cfg.Service.CloneDir)
	cfg.Service.DataDir = expandTilde(cfg.Service.DataDir)

	return cfg, nil
}

// Save saves the configuration to a file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Address returns the listen address for the HTTP server. The daemon binds
// all interfaces so callers can reach it however they resolve localhost.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Service.Port)
}

// LogPath returns the path to the daemon log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Service.DataDir, "logs", "hubgrab.log")
}

// EnsureDirectories creates the data directories the daemon writes to.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Service.DataDir,
		filepath.Dir(c.LogPath()),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
