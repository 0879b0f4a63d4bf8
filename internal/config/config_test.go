package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile() Option {
	return WithEnvFile("")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(noEnvFile())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "http://localhost:8080/", cfg.API.BaseURL)
	assert.Zero(t, cfg.API.Timeout)
	assert.Equal(t, "raw", cfg.Search.Encoding)
	assert.Equal(t, "text", cfg.UI.Renderer)
	assert.Equal(t, "console", cfg.Logger.Encoding)
	assert.True(t, cfg.Logger.DisableStacktrace)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CUSTOMERFORM_API_BASE_URL", "https://customers.example.com/api/")
	t.Setenv("CUSTOMERFORM_API_TIMEOUT", "3s")
	t.Setenv("CUSTOMERFORM_SEARCH_ENCODING", "URL")
	t.Setenv("CUSTOMERFORM_LOGGER_LEVEL", "debug")

	cfg, err := Load(noEnvFile())
	require.NoError(t, err)

	assert.Equal(t, "https://customers.example.com/api/", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "url", cfg.Search.Encoding)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "customerform.yaml")
	content := `app_env: production
api:
  base_url: http://10.0.0.5:9000/
ui:
  renderer: html
  overlay: ./ui
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(noEnvFile(), WithFile(path))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "http://10.0.0.5:9000/", cfg.API.BaseURL)
	assert.Equal(t, "html", cfg.UI.Renderer)
	assert.Equal(t, "./ui", cfg.UI.Overlay)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CUSTOMERFORM_UI_RENDERER=html\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CUSTOMERFORM_UI_RENDERER") })

	cfg, err := Load(WithEnvFile(path))
	require.NoError(t, err)
	assert.Equal(t, "html", cfg.UI.Renderer)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(noEnvFile(), WithFile(filepath.Join(t.TempDir(), "absent.yaml")))
	require.Error(t, err)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("CUSTOMERFORM_API_BASE_URL", "not a url")
	t.Setenv("CUSTOMERFORM_SEARCH_ENCODING", "base64")

	_, err := Load(noEnvFile())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Config.API.BaseURL"), err.Error())
	assert.True(t, strings.Contains(err.Error(), "Config.Search.Encoding"), err.Error())
}

func TestValidate_Renderer(t *testing.T) {
	cfg, err := Load(noEnvFile())
	require.NoError(t, err)

	cfg.UI.Renderer = "preact"
	assert.Error(t, Validate(cfg))
}
