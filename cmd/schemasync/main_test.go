package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModels = `
models:
  - name: User
    primary_key: id
    fields:
      - id: id
        type: integer
        not_null: true
      - id: name
        type: string
      - id: by_name
        type: unique_index
        unique_index:
          columns: [name]
  - name: Tag
    fields:
      - id: label
        type: text
`

func writeModels(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testModels), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantErr   bool
		wantDebug bool
	}{
		{name: "text info", level: "info", format: "text"},
		{name: "json debug", level: "debug", format: "json", wantDebug: true},
		{name: "default format", level: "warn", format: ""},
		{name: "bad level", level: "loud", format: "text", wantErr: true},
		{name: "bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := newLogger(&buf, tt.level, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDebug, logger.Enabled(t.Context(), slog.LevelDebug))
		})
	}
}

func TestPlanCommand(t *testing.T) {
	models := writeModels(t)

	out, err := execute(t, "plan", "--models", models)
	require.NoError(t, err)

	assert.Contains(t, out, "-- User\nCREATE TABLE User (id INTEGER NOT NULL PRIMARY KEY, name TEXT);\nCREATE UNIQUE INDEX by_name on User (name);\n")
	assert.Contains(t, out, "-- Tag\nCREATE TABLE Tag (label TEXT);\n")
}

func TestPlanCommandTables(t *testing.T) {
	models := writeModels(t)

	out, err := execute(t, "plan", "-m", models, "-t", "Tag", "-f", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "# Synchronization Plan")
	assert.Contains(t, out, "## Tag")
	assert.NotContains(t, out, "## User")
}

func TestSyncAndInspectCommands(t *testing.T) {
	models := writeModels(t)
	database := "sqlite://" + filepath.Join(t.TempDir(), "app.db")

	_, err := execute(t, "sync", "--database", database, "--models", models, "--log-level", "debug")
	require.NoError(t, err)

	out, err := execute(t, "inspect", "--database", database, "--tables", "User,Ghost")
	require.NoError(t, err)
	assert.Contains(t, out, "TABLE User (PK: id), 0 rows")
	assert.Contains(t, out, "by_name (name) UNIQUE")
	assert.Contains(t, out, "TABLE Ghost (missing)")
}

func TestCommandsRequireDatabase(t *testing.T) {
	models := writeModels(t)

	_, err := execute(t, "sync", "--models", models)
	assert.ErrorContains(t, err, "--database must be specified")

	_, err = execute(t, "inspect")
	assert.ErrorContains(t, err, "--database must be specified")
}

func TestSyncCommandRejectsInvalidModels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	require.NoError(t, os.WriteFile(path, []byte("models:\n  - name: T\n    fields:\n      - id: a\n        type: money\n"), 0o600))

	_, err := execute(t, "sync", "--database", "sqlite://"+filepath.Join(t.TempDir(), "app.db"), "--models", path)
	assert.Error(t, err)
}
