package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Marshal(&buf, Defaults()))

	out := buf.String()
	assert.Contains(t, out, "engine:")
	assert.Contains(t, out, "max_scan_width: 100000")
	assert.Contains(t, out, "service_name: textobjects")

	var back Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, Defaults(), back)
}

func TestSetValue_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, SetValue(configPath, "tracing.enabled", "true"))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tracing:")
	assert.Contains(t, string(data), "enabled: true")
}

func TestSetValue_UpdatesExistingKey(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(configPath))

	require.NoError(t, SetValue(configPath, "engine.max_scan_width", "5000"))
	require.NoError(t, SetValue(configPath, "watch.debounce", "1s"))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Engine.MaxScanWidth)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.True(t, cfg.Cache.Enabled, "other sections preserved")
}

func TestSetValue_PreservesComments(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# Resolution engine
engine:
  max_scan_width: 100
cache:
  enabled: true # keep documents
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o600))

	require.NoError(t, SetValue(configPath, "engine.max_scan_width", "200"))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# Resolution engine")
	assert.Contains(t, content, "# keep documents")
	assert.Contains(t, content, "max_scan_width: 200")
}

func TestSetValue_AddsMissingSection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("engine:\n  max_scan_width: 100\n"), 0o600))

	require.NoError(t, SetValue(configPath, "picker.max_visible_items", "12"))

	v := viper.New()
	v.SetConfigFile(configPath)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, 100, v.GetInt("engine.max_scan_width"))
	assert.Equal(t, 12, v.GetInt("picker.max_visible_items"))
}

func TestSetValue_Errors(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("engine:\n  max_scan_width: 100\n"), 0o600))

	tests := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty segment", key: "engine..x", wantErr: "invalid key"},
		{name: "section as value", key: "engine", wantErr: "is a section"},
		{name: "value as section", key: "engine.max_scan_width.x", wantErr: "is not a section"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetValue(configPath, tt.key, "1")
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetValue_RejectsNonMappingFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("- a\n- b\n"), 0o600))

	err := SetValue(configPath, "engine.max_scan_width", "1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a mapping")
}
