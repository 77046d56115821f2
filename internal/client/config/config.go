// Package config handles configuration for the ApexFit client: defaults,
// environment overlay, optional JSON file and command-line flags, in that
// order of precedence (later sources win).
package config

import "time"

// Config holds runtime settings for the ApexFit client.
//
// Fields:
//   - BaseURL: backend REST base, including the /api/v1 prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - DataDir: directory for the client database, sealed token file and
//     session snapshot.
//   - StoreSecret: secret used to derive the sealing key for the file
//     credential backend. The default is for local development only.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DataDir        string
	StoreSecret    string
}

// LoadDefaults populates c with local development defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8080/api/v1"
	c.RequestTimeout = 15 * time.Second
	c.DataDir = ".apexfit"
	c.StoreSecret = "dev-store-secret"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
