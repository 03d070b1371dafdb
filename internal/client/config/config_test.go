package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:3000/api/", c.APIBaseURL)
	assert.Equal(t, "rootshare.db", c.DBPath)
	assert.Equal(t, 30*time.Second, c.Timeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	for _, k := range []string{EnvAPIURL, EnvDBPath, EnvLogLevel, EnvTimeout} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:3000/api/", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempFile(t, "cfg.json", `{"api_url":"http://file/api/","db_path":"file.db","timeout":"5s","log_level":"warn"}`)
	t.Setenv(EnvDBPath, "env.db")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")
	os.Args = []string{"testbin", "-c", path, "-l", "error"}

	cfg := LoadConfig()

	assert.Equal(t, "http://file/api/", cfg.APIBaseURL, "file beats default")
	assert.Equal(t, "env.db", cfg.DBPath, "env beats file")
	assert.Equal(t, "error", cfg.LogLevel, "flag beats env")
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestValidate(t *testing.T) {
	c := Config{APIBaseURL: "ftp://x", DBPath: "", Timeout: 0}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme must be http or https")
	assert.Contains(t, err.Error(), "db path is empty")
	assert.Contains(t, err.Error(), "timeout must be positive")
}
