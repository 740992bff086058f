package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadFromBytes loads configuration from YAML bytes with environment variable expansion
func LoadFromBytes(data []byte) (Config, error) {
	var c Config
	if err := c.merge(data); err != nil {
		return c, err
	}
	c.applyDefaults()
	return c, nil
}

// LoadFrom loads the embedded base configuration and overlays every file in
// paths that exists. Missing files are skipped; unset keys keep their base value.
func LoadFrom(base []byte, paths ...string) (Config, error) {
	var c Config
	if err := c.merge(base); err != nil {
		return c, fmt.Errorf("config: embedded: %w", err)
	}

	for _, p := range paths {
		if p == "" {
			continue
		}
		p = expandHome(p)
		data, err := os.ReadFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return c, fmt.Errorf("config: read %s: %w", p, err)
		}
		if err := c.merge(data); err != nil {
			return c, fmt.Errorf("config: %s: %w", p, err)
		}
	}

	c.applyDefaults()
	return c, nil
}

func (c *Config) merge(data []byte) error {
	expanded := os.ExpandEnv(string(data))
	return yaml.Unmarshal([]byte(expanded), c)
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

// parseBool parses a string as boolean with a default value.
// Accepts: "true", "1", "yes" as true; empty or other values return default.
func parseBool(s string, defaultVal bool) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return defaultVal
	}
	return s == "true" || s == "1" || s == "yes"
}

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"server"`
	Site struct {
		URL  string `yaml:"url"`
		Name string `yaml:"name"`
	} `yaml:"site"`
	Auth struct {
		AccessSecret string `yaml:"access_secret"`
		AccessExpire int64  `yaml:"access_expire"`
	} `yaml:"auth"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	License struct {
		StoreURL       string `yaml:"store_url"`
		ItemName       string `yaml:"item_name"`
		ItemID         int    `yaml:"item_id"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		CheckSchedule  string `yaml:"check_schedule"`
	} `yaml:"license"`
	Log struct {
		Level       string `yaml:"level"`
		Development string `yaml:"development"`
	} `yaml:"log"`
	Security struct {
		UnfilteredHTML string `yaml:"unfiltered_html"`
	} `yaml:"security"`
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 27480
	}
	if c.Auth.AccessExpire == 0 {
		c.Auth.AccessExpire = 86400
	}
	if c.License.StoreURL == "" {
		c.License.StoreURL = "https://themezee.com"
	}
	if c.License.TimeoutSeconds <= 0 {
		c.License.TimeoutSeconds = 15
	}
	if c.License.CheckSchedule == "" {
		c.License.CheckSchedule = "@daily"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LicenseTimeout bounds every call to the license store.
func (c Config) LicenseTimeout() time.Duration {
	return time.Duration(c.License.TimeoutSeconds) * time.Second
}

func (c Config) IsDevelopment() bool {
	return parseBool(c.Log.Development, false)
}

func (c Config) IsUnfilteredHTML() bool {
	return parseBool(c.Security.UnfilteredHTML, false)
}
