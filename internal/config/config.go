package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultHost         = "http://127.0.0.1:11434"
	DefaultErrorDismiss = 5 * time.Second
)

type Config struct {
	// Host is the base URL of the Ollama server.
	Host         string        `toml:"host"`
	Dev          bool          `toml:"dev"`
	LogPath      string        `toml:"log_path"`
	ErrorDismiss time.Duration `toml:"error_dismiss"`
}

func Default() *Config {
	return &Config{
		Host:         DefaultHost,
		ErrorDismiss: DefaultErrorDismiss,
	}
}

// Load layers defaults, the optional TOML file at path, a .env file in the
// working directory and the process environment, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		cfg.Host = host
	}
	if logPath := os.Getenv("OLLAMACHAT_LOG_PATH"); logPath != "" {
		cfg.LogPath = logPath
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize fills zero values and turns a bare host:port into a URL.
func (c *Config) Normalize() error {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if !strings.Contains(c.Host, "://") {
		c.Host = "http://" + c.Host
	}
	u, err := url.Parse(c.Host)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid host %q", c.Host)
	}
	c.Host = strings.TrimRight(u.String(), "/")

	if c.ErrorDismiss <= 0 {
		c.ErrorDismiss = DefaultErrorDismiss
	}
	return nil
}
