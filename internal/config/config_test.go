package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvRestAPIURL, "")
	t.Setenv(EnvMenuAPIURL, "")
	t.Setenv(EnvTimeout, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.json"))
	require.NoError(t, err)

	assert.Equal(t, DefaultRestAPIURL, cfg.RestAPIURL)
	assert.Equal(t, cfg.RestAPIURL, cfg.MenuAPIURL, "menu API defaults to the REST base")
	assert.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	saved := &UserConfig{RestAPIURL: "https://file.example/api", TimeoutSeconds: 10}
	require.NoError(t, saved.Save(path))

	t.Setenv(EnvRestAPIURL, "https://env.example/api")
	t.Setenv(EnvTimeout, "45")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example/api", cfg.RestAPIURL)
	assert.Equal(t, 45, cfg.TimeoutSeconds)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := &UserConfig{
		RestAPIURL:     "https://api.example/v1",
		MenuAPIURL:     "https://menu.example",
		TimeoutSeconds: 20,
		Theme:          "light",
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.RestAPIURL, loaded.RestAPIURL)
	assert.Equal(t, cfg.MenuAPIURL, loaded.MenuAPIURL)
	assert.Equal(t, 20, loaded.TimeoutSeconds)
	assert.Equal(t, "light", loaded.Theme)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
