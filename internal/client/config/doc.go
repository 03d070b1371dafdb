// Package config loads runtime configuration for the RootShare CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file (see parseFile) selected via flags: -c or -config.
//     JSON by default, YAML when the name ends in .yaml or .yml.
//  3. Environment: ROOTSHARE_API_URL, ROOTSHARE_DB, ROOTSHARE_LOG_LEVEL,
//     ROOTSHARE_TIMEOUT.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the RootShare API
//	-d string   path to the local credential database
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # File schema
//
// The timeout uses timex.Duration, so it can be either a string like "30s"
// or integer nanoseconds:
//
//	{
//	  "api_url": "https://rootshare.example.com/api/",
//	  "db_path": "/home/me/.rootshare.db",
//	  "timeout": "30s",
//	  "log_level": "debug"
//	}
//
// Primary API
//
//   - type Config                     holds the four settings
//   - func LoadConfig() *Config       defaults, file, env, then flags
//   - func (*Config) LoadDefaults()   sets sensible defaults
//   - func (*Config) Validate() error rejects unusable settings
package config
