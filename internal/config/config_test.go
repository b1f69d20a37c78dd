package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	require.NoError(t, LoadConfig(""))

	assert.Equal(t, 8080, AppConfig.Server.Port)
	assert.Equal(t, "http://localhost:8000", AppConfig.Remote.BaseURL)
	assert.Equal(t, 1, AppConfig.Pipeline.Concurrency)
	assert.True(t, AppConfig.Pipeline.PersistDemoResults)
	assert.Equal(t, "local", AppConfig.Storage.DefaultProvider)
	assert.Equal(t, "0.0.0.0:8080", GetAddressString())
}

func TestLoadConfigFromFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "medtranscribe.json")
	content := `{
		"server": {"port": 9090},
		"remote": {"baseURL": "http://analysis:8000"},
		"pipeline": {"concurrency": 4, "persistDemoResults": false}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	require.NoError(t, LoadConfig(configFile))
	assert.Equal(t, 9090, AppConfig.Server.Port)
	assert.Equal(t, "http://analysis:8000", AppConfig.Remote.BaseURL)
	assert.Equal(t, 4, AppConfig.Pipeline.Concurrency)
	assert.False(t, AppConfig.Pipeline.PersistDemoResults)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(configFile, []byte("{not json"), 0644))

	assert.Error(t, LoadConfig(configFile))
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("MT_PORT", "7070")
	t.Setenv("MT_REMOTE_BASE_URL", "http://override:8000")
	t.Setenv("MT_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("MT_PERSIST_DEMO_RESULTS", "false")

	require.NoError(t, LoadConfig(""))
	assert.Equal(t, 7070, AppConfig.Server.Port)
	assert.Equal(t, "http://override:8000", AppConfig.Remote.BaseURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, AppConfig.Server.AllowedOrigins)
	assert.False(t, AppConfig.Pipeline.PersistDemoResults)
}
