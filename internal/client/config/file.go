package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/rootshare/internal/flagx"
	"github.com/dmitrijs2005/rootshare/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling. It relies on
// timex.Duration so the timeout can be written as "30s" or as integer
// nanoseconds.
type FileConfig struct {
	APIBaseURL string         `json:"api_url" yaml:"api_url"`
	DBPath     string         `json:"db_path" yaml:"db_path"`
	Timeout    timex.Duration `json:"timeout" yaml:"timeout"`
	LogLevel   string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays Config with values from the file named by -c/-config.
//
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
// Keys missing from the file keep their current value. Panics on read or
// unmarshal errors (caller should recover if desired).
func parseFile(cfg *Config) {
	path := flagx.ConfigPathFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.DBPath != "" {
		cfg.DBPath = fc.DBPath
	}
	if fc.Timeout.Duration != 0 {
		cfg.Timeout = fc.Timeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
