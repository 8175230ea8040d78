// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable Load reads the config path from.
const EnvironmentVariable = "REMOTEFILE_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config is the client configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// Bridge configures how the client reaches the host process.
	Bridge BridgeConfig `yaml:"bridge"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`

	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Bridge *BridgeConfig `yaml:"bridge,omitempty"`
	Log    *LogConfig    `yaml:"log,omitempty"`
}

// BridgeConfig configures the Unix socket bridge to the host.
type BridgeConfig struct {
	// SocketPath is the host's bridge socket.
	// Default: /run/remotefile/host.sock
	SocketPath string `yaml:"socket_path"`

	// TokenPath is a file holding the token presented to the host.
	// Empty means unauthenticated requests.
	TokenPath string `yaml:"token_path"`

	// DialTimeout bounds connecting to the socket.
	// Default: 5s
	DialTimeout string `yaml:"dial_timeout"`

	// ResponseTimeout bounds waiting for the host's answer.
	// Default: 120s
	ResponseTimeout string `yaml:"response_timeout"`

	// MaxResponseSize bounds a single response in bytes.
	// Default: 64 MiB
	MaxResponseSize int64 `yaml:"max_response_size"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info (development, staging), warn (production)
	Level string `yaml:"level"`
}

// Default returns the configuration used as the base before a file is
// loaded.
func Default() *Config {
	return &Config{
		Environment: Development,
		Bridge: BridgeConfig{
			SocketPath:      "/run/remotefile/host.sock",
			DialTimeout:     "5s",
			ResponseTimeout: "120s",
			MaxResponseSize: 64 * 1024 * 1024,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by REMOTEFILE_CONFIG.
// There is no fallback: if the variable is unset, Load fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your remotefile.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path, applies the override section
// for the configured environment, and expands ${VAR} references in
// paths.
//
// Files ending in .json or .jsonc may contain comments and trailing
// commas; everything else is parsed as YAML.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// YAML is a superset of JSON, so once comments and trailing
		// commas are stripped the YAML decoder reads it unchanged.
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		if overrides == nil {
			overrides = &ConfigOverrides{Log: &LogConfig{Level: "warn"}}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Bridge != nil {
		if overrides.Bridge.SocketPath != "" {
			c.Bridge.SocketPath = overrides.Bridge.SocketPath
		}
		if overrides.Bridge.TokenPath != "" {
			c.Bridge.TokenPath = overrides.Bridge.TokenPath
		}
		if overrides.Bridge.DialTimeout != "" {
			c.Bridge.DialTimeout = overrides.Bridge.DialTimeout
		}
		if overrides.Bridge.ResponseTimeout != "" {
			c.Bridge.ResponseTimeout = overrides.Bridge.ResponseTimeout
		}
		if overrides.Bridge.MaxResponseSize != 0 {
			c.Bridge.MaxResponseSize = overrides.Bridge.MaxResponseSize
		}
	}

	if overrides.Log != nil && overrides.Log.Level != "" {
		c.Log.Level = overrides.Log.Level
	}
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Bridge.SocketPath = expandVars(c.Bridge.SocketPath, vars)
	c.Bridge.TokenPath = expandVars(c.Bridge.TokenPath, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Timeouts returns the parsed dial and response timeouts.
func (b BridgeConfig) Timeouts() (dial, response time.Duration, err error) {
	dial, err = time.ParseDuration(b.DialTimeout)
	if err != nil {
		return 0, 0, fmt.Errorf("bridge.dial_timeout: %w", err)
	}
	response, err = time.ParseDuration(b.ResponseTimeout)
	if err != nil {
		return 0, 0, fmt.Errorf("bridge.response_timeout: %w", err)
	}
	return dial, response, nil
}

// SlogLevel returns the configured level as a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Bridge.SocketPath == "" {
		errs = append(errs, errors.New("bridge.socket_path is required"))
	}

	if dial, response, err := c.Bridge.Timeouts(); err != nil {
		errs = append(errs, err)
	} else if dial <= 0 || response <= 0 {
		errs = append(errs, errors.New("bridge timeouts must be positive"))
	}

	if c.Bridge.MaxResponseSize <= 0 {
		errs = append(errs, errors.New("bridge.max_response_size must be positive"))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
