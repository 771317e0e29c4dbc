package internal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultServerURL points at a locally running ChatterBot API.
	DefaultServerURL = "http://localhost:8000"

	// DefaultTimeout bounds each request. The session contract tolerates
	// calls running to natural completion; the timeout is hardening only.
	DefaultTimeout = 60 * time.Second
)

// Config holds everything the client needs to talk to the chat service.
type Config struct {
	// ServerURL is the base URL of the chat service. All endpoints
	// (/api/chat, /api/health, /api/chat/clear) live under it.
	ServerURL string

	// Timeout is the per-request timeout. Zero disables it.
	Timeout time.Duration

	// Greeting is the assistant message a fresh conversation is seeded with.
	Greeting string
}

// fileConfig is the YAML shape of the config file. Timeout is a duration
// string ("60s", "2m") since yaml.v3 has no native duration support.
type fileConfig struct {
	ServerURL string `yaml:"server_url"`
	Timeout   string `yaml:"timeout"`
	Greeting  string `yaml:"greeting"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerURL: DefaultServerURL,
		Timeout:   DefaultTimeout,
		Greeting:  DefaultGreeting,
	}
}

// DefaultConfigPath returns the standard config file location. An empty
// string means no standard location could be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chatterbot", "config.yaml")
}

// LoadConfig resolves configuration in increasing precedence: built-in
// defaults, the YAML config file, then environment variables (a .env file
// in the working directory is honored). Command-line flags are applied on
// top by the caller.
//
// path may be empty, in which case the standard location is tried; a
// missing file at either location is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return nil, &ConfigError{Path: path, Err: err}
			}
			if fc.ServerURL != "" {
				cfg.ServerURL = fc.ServerURL
			}
			if fc.Timeout != "" {
				d, err := time.ParseDuration(fc.Timeout)
				if err != nil {
					return nil, &ConfigError{Path: path, Err: err}
				}
				cfg.Timeout = d
			}
			if fc.Greeting != "" {
				cfg.Greeting = fc.Greeting
			}
			LogDebug("loaded config from %s", path)
		case os.IsNotExist(err) && !explicit:
			// No config file is fine; defaults apply.
		default:
			return nil, &ConfigError{Path: path, Err: err}
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

// applyEnv overlays CHATTERBOT_* environment variables, loading a local
// .env file first if one exists.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("CHATTERBOT_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("CHATTERBOT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		} else {
			LogWarn("ignoring invalid CHATTERBOT_TIMEOUT %q: %v", v, err)
		}
	}
	if v := os.Getenv("CHATTERBOT_GREETING"); v != "" {
		c.Greeting = v
	}
}
