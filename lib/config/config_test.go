// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}
	if cfg.Bridge.SocketPath != "/run/remotefile/host.sock" {
		t.Errorf("expected socket_path=/run/remotefile/host.sock, got %s", cfg.Bridge.SocketPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_RequiresEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when REMOTEFILE_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "REMOTEFILE_CONFIG environment variable not set") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_WithEnvironmentVariable(t *testing.T) {
	path := writeConfig(t, "remotefile.yaml", `
environment: development
bridge:
  socket_path: /tmp/custom.sock
  response_timeout: 30s
`)
	t.Setenv(EnvironmentVariable, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bridge.SocketPath != "/tmp/custom.sock" {
		t.Errorf("socket_path = %s, want /tmp/custom.sock", cfg.Bridge.SocketPath)
	}
	dial, response, err := cfg.Bridge.Timeouts()
	if err != nil {
		t.Fatalf("Timeouts: %v", err)
	}
	if dial != 5*time.Second || response != 30*time.Second {
		t.Errorf("timeouts = %v/%v, want 5s/30s", dial, response)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/remotefile.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "bad.yaml", "bridge: [unterminated\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "remotefile.jsonc", `{
  // bridge to the desktop host
  "bridge": {
    "socket_path": "/tmp/jsonc.sock",
    "max_response_size": 1048576, // 1 MiB
  },
  "log": {"level": "debug"},
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Bridge.SocketPath != "/tmp/jsonc.sock" {
		t.Errorf("socket_path = %s", cfg.Bridge.SocketPath)
	}
	if cfg.Bridge.MaxResponseSize != 1048576 {
		t.Errorf("max_response_size = %d", cfg.Bridge.MaxResponseSize)
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("level = %v (%v), want debug", level, err)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "remotefile.yaml", `
environment: staging
bridge:
  socket_path: /run/base.sock
staging:
  bridge:
    socket_path: /run/staging.sock
    token_path: /etc/remotefile/token
  log:
    level: debug
production:
  bridge:
    socket_path: /run/production.sock
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Bridge.SocketPath != "/run/staging.sock" {
		t.Errorf("socket_path = %s, want staging override", cfg.Bridge.SocketPath)
	}
	if cfg.Bridge.TokenPath != "/etc/remotefile/token" {
		t.Errorf("token_path = %s, want staging override", cfg.Bridge.TokenPath)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %s, want debug", cfg.Log.Level)
	}
}

func TestProductionDefaults(t *testing.T) {
	path := writeConfig(t, "remotefile.yaml", "environment: production\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("production log.level = %s, want warn", cfg.Log.Level)
	}
}

func TestExpandVariables(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("REMOTEFILE_TEST_RUNTIME", "")

	path := writeConfig(t, "remotefile.yaml", `
bridge:
  socket_path: ${REMOTEFILE_TEST_RUNTIME:-/run/user/1000}/host.sock
  token_path: ${HOME}/.config/remotefile/token
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Bridge.SocketPath != "/run/user/1000/host.sock" {
		t.Errorf("socket_path = %s", cfg.Bridge.SocketPath)
	}
	if cfg.Bridge.TokenPath != "/home/tester/.config/remotefile/token" {
		t.Errorf("token_path = %s", cfg.Bridge.TokenPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "bad environment", mutate: func(c *Config) { c.Environment = "qa" }, wantErr: "invalid environment"},
		{name: "no socket", mutate: func(c *Config) { c.Bridge.SocketPath = "" }, wantErr: "bridge.socket_path is required"},
		{name: "bad timeout", mutate: func(c *Config) { c.Bridge.DialTimeout = "soon" }, wantErr: "bridge.dial_timeout"},
		{name: "zero timeout", mutate: func(c *Config) { c.Bridge.ResponseTimeout = "0s" }, wantErr: "must be positive"},
		{name: "zero size", mutate: func(c *Config) { c.Bridge.MaxResponseSize = 0 }, wantErr: "bridge.max_response_size"},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := Default()
			test.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), test.wantErr)
			}
		})
	}
}
