package config

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/pmgraph/pkg/storage"
)

func TestLoadEnv_Defaults(t *testing.T) {
	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "local", env.Env)
	assert.Equal(t, "local", env.Type)
	assert.Equal(t, filepath.Join(".", ".claude"), env.CorpusPath())
	assert.Equal(t, slog.LevelWarn, env.SlogLevel())
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("PMGRAPH_ROOT", "/srv/project")
	t.Setenv("PMGRAPH_LOG_LEVEL", "debug")
	t.Setenv("PMGRAPH_STORAGE_TYPE", "s3")
	t.Setenv("PMGRAPH_S3_BUCKET", "pm-corpus")
	t.Setenv("PMGRAPH_ASCII", "true")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "/srv/project/.claude", filepath.ToSlash(env.CorpusPath()))
	assert.Equal(t, slog.LevelDebug, env.SlogLevel())
	assert.Equal(t, "s3", env.Type)
	assert.Equal(t, "pm-corpus", env.S3Bucket)
	assert.True(t, env.ASCII)
}

func TestColored(t *testing.T) {
	assert.True(t, (&BaseEnv{Color: "auto"}).Colored(true))
	assert.False(t, (&BaseEnv{Color: "auto"}).Colored(false))
	assert.True(t, (&BaseEnv{Color: "always"}).Colored(false))
	assert.False(t, (&BaseEnv{Color: "never"}).Colored(true))
}

func TestSlogLevel_Invalid(t *testing.T) {
	env := &BaseEnv{LogLevel: "loud"}
	assert.Equal(t, slog.LevelWarn, env.SlogLevel())
	var nilEnv *BaseEnv
	assert.Equal(t, slog.LevelWarn, nilEnv.SlogLevel())
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name     string
		content  *string
		expected Settings
	}{
		{
			name:     "missing file",
			expected: DefaultSettings(),
		},
		{
			name:    "partial override",
			content: ptr("search:\n  task_limit: 3\nstandup:\n  window: 36h\n"),
			expected: Settings{
				Search:   SearchSettings{TaskLimit: 3},
				Progress: ProgressSettings{BarWidth: DefaultProgressBarWidth},
				Standup:  StandupSettings{Window: Duration(36 * time.Hour)},
			},
		},
		{
			name:     "non-positive values fall back",
			content:  ptr("search:\n  task_limit: 0\nprogress:\n  bar_width: -4\n"),
			expected: DefaultSettings(),
		},
		{
			name:     "malformed yaml",
			content:  ptr("search: [unterminated\n"),
			expected: DefaultSettings(),
		},
		{
			name:     "bad duration",
			content:  ptr("standup:\n  window: yesterday\n"),
			expected: DefaultSettings(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.content != nil {
				require.NoError(t, os.WriteFile(filepath.Join(root, SettingsFile), []byte(*tt.content), 0o644))
			}
			store, err := storage.NewLocalStorage(root)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, LoadSettings(context.Background(), store))
		})
	}
}

type unreadableStore struct {
	storage.Storage
}

func (unreadableStore) Read(context.Context, string) ([]byte, error) {
	return nil, errors.New("permission denied")
}

func TestLoadSettings_Unreadable(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	assert.Equal(t, DefaultSettings(), LoadSettings(context.Background(), unreadableStore{Storage: local}))
	assert.Contains(t, logs.String(), "[internal] failed to read pmgraph.yaml: permission denied")
}

func ptr(s string) *string { return &s }
