package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables read by parseEnv.
const (
	EnvAPIURL   = "ROOTSHARE_API_URL"
	EnvDBPath   = "ROOTSHARE_DB"
	EnvLogLevel = "ROOTSHARE_LOG_LEVEL"
	EnvTimeout  = "ROOTSHARE_TIMEOUT"
)

// parseEnv overlays Config with the ROOTSHARE_* variables that are set and
// non-empty. ROOTSHARE_TIMEOUT accepts a duration ("45s") or whole seconds.
// Panics on a malformed timeout.
func parseEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", EnvTimeout, err))
		}
		cfg.Timeout = d
	}
}

func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
