package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/passw0rds/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Generate.Count)
	assert.Nil(t, cfg.Source.Kind)
}

func TestLoadConfigAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[generate]
count = 5
max-length = 12
pattern = "ANP"
mode = "leet"

[source]
kind = "dir"
dir = "/srv/words"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	fileCfg, err := LoadConfig(path)
	require.NoError(t, err)

	cfg, err := fileCfg.Generate.Apply(model.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Count)
	assert.Equal(t, 4, cfg.MinLength)
	assert.Equal(t, 12, cfg.MaxLength)
	assert.Equal(t, model.Pattern("ANP"), cfg.Pattern)
	assert.Equal(t, model.ModeLeet, cfg.Mode)

	src := ResolveSource(fileCfg.Source, EnvConfig{})
	assert.Equal(t, SourceDir, src.Kind)
	assert.Equal(t, "/srv/words", src.Dir)
	assert.Equal(t, DefaultDBPath(), src.DB)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[generate]\ncolour = \"red\"\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "colour")
}

func TestApplyInvalidMode(t *testing.T) {
	mode := "rot13"
	_, err := GenerateConfig{Mode: &mode}.Apply(model.DefaultConfig())
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestParseEnv(t *testing.T) {
	cfg, err := parseEnv(env.Options{Environment: map[string]string{
		"PASSW0RDS_SOURCE":       "http",
		"PASSW0RDS_WORDLIST_URL": "https://example.com/lists",
		"PASSW0RDS_CONFIG":       "/tmp/p.toml",
	}})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "/tmp/p.toml", cfg.ResolveConfigPath())

	kind := "dir"
	src := ResolveSource(SourceConfig{Kind: &kind}, cfg)
	assert.Equal(t, SourceHTTP, src.Kind)
	assert.Equal(t, "https://example.com/lists", src.URL)
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	assert.Equal(t, filepath.Join("/cfg", "passw0rds", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/cfg", "passw0rds", "wordlists"), DefaultWordListDir())
	assert.Equal(t, filepath.Join("/data", "passw0rds", "words.db"), DefaultDBPath())
	assert.Equal(t, DefaultConfigPath(), EnvConfig{}.ResolveConfigPath())
}

func TestApplyNormalizesPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[generate]\npattern = \" avnp \"\n"), 0o644))

	fileCfg, err := LoadConfig(path)
	require.NoError(t, err)
	cfg, err := fileCfg.Generate.Apply(model.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, model.Pattern("AVNP"), cfg.Pattern)
}
