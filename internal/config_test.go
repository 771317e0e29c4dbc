package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Point the standard location somewhere empty so a developer's real
	// config cannot leak into the test.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("server URL = %q, want %q", cfg.ServerURL, DefaultServerURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Greeting != DefaultGreeting {
		t.Errorf("greeting = %q, want the default", cfg.Greeting)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfigFile(t, `
server_url: http://chat.example.com:9000
timeout: 90s
greeting: Welcome back!
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ServerURL != "http://chat.example.com:9000" {
		t.Errorf("server URL = %q", cfg.ServerURL)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("timeout = %v, want 90s", cfg.Timeout)
	}
	if cfg.Greeting != "Welcome back!" {
		t.Errorf("greeting = %q", cfg.Greeting)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `server_url: http://chat.example.com`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ServerURL != "http://chat.example.com" {
		t.Errorf("server URL = %q", cfg.ServerURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want default for unset field", cfg.Timeout)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `server_url: http://from-file.example.com`)

	t.Setenv("CHATTERBOT_SERVER_URL", "http://from-env.example.com")
	t.Setenv("CHATTERBOT_TIMEOUT", "5s")
	t.Setenv("CHATTERBOT_GREETING", "env greeting")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.ServerURL != "http://from-env.example.com" {
		t.Errorf("server URL = %q, env should win over file", cfg.ServerURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s from env", cfg.Timeout)
	}
	if cfg.Greeting != "env greeting" {
		t.Errorf("greeting = %q", cfg.Greeting)
	}
}

func TestLoadConfig_InvalidEnvTimeoutIgnored(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CHATTERBOT_TIMEOUT", "not-a-duration")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, invalid env value should be ignored", cfg.Timeout)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{
			name: "explicit missing file",
			path: filepath.Join(os.TempDir(), "definitely-missing-chatterbot.yaml"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(tt.path); err == nil {
				t.Error("LoadConfig() should fail for an explicitly given missing file")
			}
		})
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "server_url: [unclosed")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("LoadConfig() should fail on malformed YAML")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Errorf("error type = %T, want *ConfigError", err)
	}
}

func TestLoadConfig_BadFileTimeout(t *testing.T) {
	path := writeConfigFile(t, `timeout: ninety seconds`)

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject an unparseable timeout in the file")
	}
}
