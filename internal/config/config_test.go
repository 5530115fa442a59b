package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	symerrors "github.com/sympmatch/sympmatch/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "data/diseases.csv", cfg.Corpus.Path)
	assert.Equal(t, "data/symptoms_synonyms.csv", cfg.Corpus.SynonymsPath)
	assert.Equal(t, 3, cfg.Match.TopK)
	assert.InDelta(t, 0.2, cfg.Match.Threshold, 1e-9)
	assert.True(t, cfg.Watch.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
corpus:
  path: /srv/diseases.csv
match:
  top_k: 10
  threshold: 0.5
watch:
  enabled: false
  poll_interval: 5s
  debounce_window: 1s
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/diseases.csv", cfg.Corpus.Path)
	assert.Equal(t, "data/symptoms_synonyms.csv", cfg.Corpus.SynonymsPath, "unset keys keep defaults")
	assert.Equal(t, 10, cfg.Match.TopK)
	assert.InDelta(t, 0.5, cfg.Match.Threshold, 1e-9)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Watch.PollInterval.Std())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("match:\n  top_k: 10\n"), 0o644))

	t.Setenv("SYMPMATCH_TOPK", "7")
	t.Setenv("SYMPMATCH_THRESHOLD", "0.9")
	t.Setenv("SYMPMATCH_CORPUS", "/env/diseases.csv")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Match.TopK)
	assert.InDelta(t, 0.9, cfg.Match.Threshold, 1e-9)
	assert.Equal(t, "/env/diseases.csv", cfg.Corpus.Path)
}

func TestLoad_BadEnvValues(t *testing.T) {
	t.Run("topk", func(t *testing.T) {
		t.Setenv("SYMPMATCH_TOPK", "lots")
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Equal(t, symerrors.ErrCodeConfigInvalid, symerrors.CodeOf(err))
	})

	t.Run("threshold", func(t *testing.T) {
		t.Setenv("SYMPMATCH_THRESHOLD", "very low")
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.Equal(t, symerrors.ErrCodeConfigInvalid, symerrors.CodeOf(err))
	})
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("corpus: [not a mapping\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, symerrors.ErrCodeConfigInvalid, symerrors.CodeOf(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty corpus path", func(c *Config) { c.Corpus.Path = "" }},
		{"zero top_k", func(c *Config) { c.Match.TopK = 0 }},
		{"negative threshold", func(c *Config) { c.Match.Threshold = -0.1 }},
		{"threshold above one", func(c *Config) { c.Match.Threshold = 1.1 }},
		{"zero poll interval", func(c *Config) { c.Watch.PollInterval = 0 }},
		{"zero debounce window", func(c *Config) { c.Watch.DebounceWindow = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, symerrors.ErrCodeConfigInvalid, symerrors.CodeOf(err))
		})
	}
}
