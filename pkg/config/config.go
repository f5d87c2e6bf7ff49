package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Config struct {
	Port         string        `yaml:"port"`
	CatalogURL   string        `yaml:"catalog_url"`
	FetchMode    string        `yaml:"fetch_mode"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	UserAgent    string        `yaml:"user_agent"`
	DocsSpecDir  string        `yaml:"docs_spec_dir"`
}

func Default() Config {
	return Config{
		Port:         "9090",
		FetchMode:    FetchModeHTTP,
		FetchTimeout: 10 * time.Second,
		UserAgent:    defaultUserAgent,
		DocsSpecDir:  "./",
	}
}

// Load reads the optional YAML file at path, applies environment overrides
// and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.CatalogURL = getEnv("CATALOG_URL", c.CatalogURL)
	c.FetchMode = getEnv("FETCH_MODE", c.FetchMode)
	c.UserAgent = getEnv("USER_AGENT", c.UserAgent)
	c.DocsSpecDir = getEnv("DOCS_SPEC_DIR", c.DocsSpecDir)

	if val := os.Getenv("FETCH_TIMEOUT_SECONDS"); val != "" {
		seconds, err := strconv.Atoi(val)
		if err != nil || seconds <= 0 {
			return fmt.Errorf("FETCH_TIMEOUT_SECONDS must be a positive integer, got %q", val)
		}
		c.FetchTimeout = time.Duration(seconds) * time.Second
	}
	return nil
}

func (c Config) Validate() error {
	if c.CatalogURL == "" {
		return fmt.Errorf("catalog_url is required (set CATALOG_URL)")
	}
	u, err := url.Parse(c.CatalogURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("catalog_url %q is not an http(s) URL", c.CatalogURL)
	}
	if c.FetchMode != FetchModeHTTP && c.FetchMode != FetchModeBrowser {
		return fmt.Errorf("fetch_mode must be %q or %q, got %q", FetchModeHTTP, FetchModeBrowser, c.FetchMode)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port must be numeric, got %q", c.Port)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
