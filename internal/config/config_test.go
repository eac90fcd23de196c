package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TRIGGERGEN_COUNT", "TRIGGERGEN_OUTPUT", "TRIGGERGEN_SQLITE",
		"TRIGGERGEN_LOG_LEVEL", "TRIGGERGEN_LOG_FORMAT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2000, cfg.Generation.Count)
	assert.Equal(t, "data/triggers_v3.json", cfg.Output.Path)
	assert.Empty(t, cfg.Export.SQLitePath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "conf", "triggergen.yaml")
	cfg := DefaultConfig()
	cfg.Generation.Count = 42
	cfg.Export.SQLitePath = "out/triggers.db"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "triggergen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2000, cfg.Generation.Count)
	assert.Equal(t, "data/triggers_v3.json", cfg.Output.Path)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation: [unclosed"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIGGERGEN_COUNT", "15")
	t.Setenv("TRIGGERGEN_OUTPUT", "/tmp/elsewhere.json")
	t.Setenv("TRIGGERGEN_SQLITE", "/tmp/triggers.db")
	t.Setenv("TRIGGERGEN_LOG_FORMAT", "console")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Generation.Count)
	assert.Equal(t, "/tmp/elsewhere.json", cfg.Output.Path)
	assert.Equal(t, "/tmp/triggers.db", cfg.Export.SQLitePath)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestEnvOverrides_BadCount(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIGGERGEN_COUNT", "lots")

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "failed to parse environment")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generation.Count = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Output.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}
