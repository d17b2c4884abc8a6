package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacokyle01/critical-moves/apperrors"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "stockfish", cfg.Engine.Path)
	assert.Equal(t, 15, cfg.Analysis.Depth)
	assert.Equal(t, 2.0, cfg.Analysis.Threshold)
	assert.Equal(t, "./output", cfg.Output.Dir)
	assert.True(t, cfg.Output.HTML)
	assert.True(t, cfg.Output.Prompts)
	assert.Equal(t, "chess_analyzer.log", cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Cache.Dir)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyzer.yaml")
	content := `engine:
  path: /usr/local/bin/stockfish
  options:
    Threads: "4"
analysis:
  depth: 22
  threshold: 1.5
output:
  prompts: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/stockfish", cfg.Engine.Path)
	assert.Equal(t, "4", cfg.Engine.Options["threads"])
	assert.Equal(t, 22, cfg.Analysis.Depth)
	assert.Equal(t, 1.5, cfg.Analysis.Threshold)
	assert.False(t, cfg.Output.Prompts)
	assert.True(t, cfg.Output.HTML)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHESS_ANALYZER_ANALYSIS_DEPTH", "8")
	t.Setenv("CHESS_ANALYZER_OUTPUT_DIR", "/tmp/reports")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Analysis.Depth)
	assert.Equal(t, "/tmp/reports", cfg.Output.Dir)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero depth", func(c *Config) { c.Analysis.Depth = 0 }},
		{"negative threshold", func(c *Config) { c.Analysis.Threshold = -0.5 }},
		{"empty engine", func(c *Config) { c.Engine.Path = "" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(New(), "")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), apperrors.ErrInvalidValue)
		})
	}

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	cfg.Analysis.Threshold = 0
	assert.NoError(t, cfg.Validate())
}
