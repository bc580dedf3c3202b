package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "http:\n  port: 9090\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Http.Port)
	assert.Equal(t, 30*time.Second, cfg.Http.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "Diabetes.pkl", cfg.Model.Path)
	assert.Equal(t, 1024, cfg.CacheSize())
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 8081
  timeout: 5s
log:
  level: debug
  file: app.log
model:
  path: models/tree.json
  watch: true
cache:
  size: -1
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Http.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "app.log", cfg.Log.File)
	assert.Equal(t, "models/tree.json", cfg.Model.Path)
	assert.True(t, cfg.Model.Watch)
	assert.Equal(t, 0, cfg.CacheSize())
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "log:\n  level: verbose\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "http:\n  port: 70000\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "http: [not, a, map]\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestResolvePrefersFlagThenEnv(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/diabetescheck.yaml")
	assert.Equal(t, "flag.yaml", Resolve("flag.yaml"))
	assert.Equal(t, "/etc/diabetescheck.yaml", Resolve(""))
}
