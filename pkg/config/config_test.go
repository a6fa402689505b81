package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"NAVTREE_PORT",
	"NAVTREE_LOG_LEVEL",
	"NAVTREE_LOG_FORMAT",
	"NAVTREE_TREE_FILE",
	"NAVTREE_SHUTDOWN_TIMEOUT",
	"NAVTREE_TLS_CERT_FILE",
	"NAVTREE_TLS_KEY_FILE",
}

// clearEnv unsets the variables for the test and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.Equal(t, DefaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.TreeFile)
	assert.False(t, cfg.TLSEnabled())
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("NAVTREE_PORT", "8080")
	t.Setenv("NAVTREE_LOG_LEVEL", "debug")
	t.Setenv("NAVTREE_TREE_FILE", "/etc/navtree/nav.yaml")
	t.Setenv("NAVTREE_SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/etc/navtree/nav.yaml", cfg.TreeFile)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("NAVTREE_PORT", "7000")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("NAVTREE_PORT=9000\nNAVTREE_LOG_FORMAT=text\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"bad port":      {"NAVTREE_PORT": "70000"},
		"not a number":  {"NAVTREE_PORT": "abc"},
		"half tls":      {"NAVTREE_TLS_CERT_FILE": "/tmp/cert.pem"},
		"zero shutdown": {"NAVTREE_SHUTDOWN_TIMEOUT": "0s"},
		"bad duration":  {"NAVTREE_SHUTDOWN_TIMEOUT": "soon"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

func TestLoadTreeFile_IgnoresOtherSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("NAVTREE_PORT", "abc")
	t.Setenv("NAVTREE_TLS_CERT_FILE", "/tmp/cert.pem")
	t.Setenv(EnvTreeFile, "/etc/navtree/nav.yaml")

	path, err := LoadTreeFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "/etc/navtree/nav.yaml", path)
}

func TestLoadTreeFile_DotEnv(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("NAVTREE_PORT=abc\nNAVTREE_TREE_FILE=nav.json\n"), 0o600))

	path, err := LoadTreeFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, "nav.json", path)
	_, set := os.LookupEnv(EnvTreeFile)
	assert.False(t, set, "the .env file must not leak into the environment")
}

func TestLoadTreeFile_Unset(t *testing.T) {
	clearEnv(t)

	path, err := LoadTreeFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Empty(t, path)
}
