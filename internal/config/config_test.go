package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("database", "", "")
	flags.String("models", DefaultModelsFile, "")
	flags.StringSlice("tables", nil, "")
	flags.String("format", "text", "")
	flags.String("log-level", "info", "")
	return flags
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", newFlags())
	require.NoError(t, err)

	assert.Equal(t, DefaultModelsFile, cfg.Models)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.Database)
	assert.Empty(t, cfg.Tables)
	assert.Empty(t, cfg.File)
}

func TestLoadDefaultConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "database: sqlite://app.db\ntables: [users, posts]\nlog_level: debug\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultConfigFile, cfg.File)
	assert.Equal(t, "sqlite://app.db", cfg.Database)
	assert.Equal(t, []string{"users", "posts"}, cfg.Tables)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultModelsFile, cfg.Models)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, t.TempDir(), "models: schema/models.yaml\nformat: markdown\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "schema/models.yaml", cfg.Models)
	assert.Equal(t, "markdown", cfg.Format)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "database: sqlite://file.db\nformat: markdown\nlog_level: warn\n")
	t.Setenv("SCHEMASYNC_DATABASE", "sqlite://env.db")
	t.Setenv("SCHEMASYNC_TABLES", "users, posts")
	t.Setenv("SCHEMASYNC_LOG_LEVEL", "error")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--log-level", "debug", "--tables", "comments"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	// env over file
	assert.Equal(t, "sqlite://env.db", cfg.Database)
	// file over defaults, unchanged flag defaults ignored
	assert.Equal(t, "markdown", cfg.Format)
	// flags over env
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"comments"}, cfg.Tables)
}

func TestLoadEnvList(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCHEMASYNC_TABLES", "users, posts,,comments")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "posts", "comments"}, cfg.Tables)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"format", "SCHEMASYNC_FORMAT", "html"},
		{"log level", "SCHEMASYNC_LOG_LEVEL", "loud"},
		{"log format", "SCHEMASYNC_LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := Load("", nil)
			assert.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(nil))
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a,b", " c "}))
}
