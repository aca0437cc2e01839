package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears a variable for the test's duration; t.Setenv alone
// would leave it set-but-empty, which envconfig applies as an override.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

// clearEnv removes every variable envconfig might read, including the
// unprefixed fallbacks (EMAIL is commonly set on CI machines).
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TUNTAS_API_URL", "TUNTAS_EMAIL", "TUNTAS_LOG_LEVEL", "TUNTAS_REQUEST_TIMEOUT_SECONDS",
		"API_URL", "EMAIL", "LOG_LEVEL", "REQUEST_TIMEOUT_SECONDS",
	} {
		unsetenv(t, key)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, time.Duration(DefaultRequestTimeoutSeconds)*time.Second, cfg.Timeout())
	assert.Empty(t, cfg.APIURL)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	dir := filepath.Join(home, configDirName)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(`
api_url = "https://todo.example.com"
email = "file@example.com"
log_level = "debug"
request_timeout_seconds = 5
`), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://todo.example.com", cfg.APIURL)
	assert.Equal(t, "file@example.com", cfg.Email)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
}

func TestEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	dir := filepath.Join(home, configDirName)
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(`
api_url = "https://file.example.com"
email = "file@example.com"
`), 0o600))

	t.Setenv("TUNTAS_API_URL", "https://env.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIURL)
	assert.Equal(t, "file@example.com", cfg.Email, "file value survives when env is unset")
}

func TestValidateRequiresURLAndEmail(t *testing.T) {
	cfg := &Config{}
	assert.ErrorContains(t, cfg.Validate(), "api url")

	cfg.APIURL = "https://todo.example.com"
	assert.ErrorContains(t, cfg.Validate(), "email")

	cfg.Email = "user@example.com"
	assert.NoError(t, cfg.Validate())
}
