package config

import "time"

// Config holds runtime settings for the CreatorGenius CLI.
//
// Fields:
//   - APIBaseURL: base URL of the CreatorGenius backend, e.g. "https://api.creatorgenius.app/api".
//   - RequestTimeout: fixed upper bound on any single outbound request.
//   - DataDir: directory holding the local credential database and device secret.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DataDir        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:5001/api"
	c.RequestTimeout = 15 * time.Second
	c.DataDir = "."
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
