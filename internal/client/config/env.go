package config

import "os"

// Environment variable names.
const (
	EnvBaseURL     = "APEXFIT_API_BASE_URL"
	EnvDataDir     = "APEXFIT_DATA_DIR"
	EnvStoreSecret = "APEXFIT_STORE_SECRET"
)

// parseEnv overlays Config with values from the environment. Unset
// variables leave the current value in place.
func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvStoreSecret); v != "" {
		cfg.StoreSecret = v
	}
}
