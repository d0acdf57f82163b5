package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func project(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, ".claude/prds/auth.md", "---\nname: auth\nstatus: backlog\n---\n")
	writeFile(t, root, ".claude/epics/auth/epic.md", "---\nname: auth\nstatus: in-progress\n---\n")
	writeFile(t, root, ".claude/epics/auth/1.md", "---\nname: Schema\nstatus: closed\n---\n")
	writeFile(t, root, ".claude/epics/auth/2.md", "---\nname: Login\nstatus: open\ndepends_on: [1]\n---\n")
	writeFile(t, root, ".claude/rules/style.md", "rule")
	return root
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	for _, key := range []string{"PMGRAPH_ROOT", "PMGRAPH_CORPUS_DIR", "PMGRAPH_STORAGE_TYPE", "PMGRAPH_COLOR", "PMGRAPH_ASCII", "PMGRAPH_ENV", "PMGRAPH_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"--ascii"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunCommands(t *testing.T) {
	root := project(t)

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout []string
		wantStderr []string
	}{
		{
			name:       "default command is status",
			args:       []string{"--root", root},
			wantStdout: []string{"PRDs:", "EPICS:", "TASKS:", "Total: 2"},
		},
		{
			name:       "epic status",
			args:       []string{"--root", root, "epic-status", "auth"},
			wantStdout: []string{"[##########----------] 50%", "[PAUSED] Blocked: 1"},
		},
		{
			name:       "unknown epic",
			args:       []string{"--root", root, "epic-status", "nope"},
			wantCode:   1,
			wantStderr: []string{"Epic not found: nope", "Available epics:", "- auth"},
		},
		{
			name:       "epic status without a name",
			args:       []string{"--root", root, "epic-status"},
			wantCode:   1,
			wantStderr: []string{"Please specify an epic name", "Usage:", "- auth"},
		},
		{
			name:       "epic show without a name",
			args:       []string{"--root", root, "epic-show"},
			wantCode:   1,
			wantStderr: []string{"Please provide an epic name", "Usage:"},
		},
		{
			name:       "epic show",
			args:       []string{"--root", root, "epic-show", "auth"},
			wantStdout: []string{"[OK] #1 - Schema", "[ ] #2 - Login"},
		},
		{
			name:       "search without a query",
			args:       []string{"--root", root, "search"},
			wantCode:   1,
			wantStderr: []string{"Please provide a search query"},
		},
		{
			name:       "search with no matches",
			args:       []string{"--root", root, "search", "xyz123notfound"},
			wantStdout: []string{"No matches", "TOTAL FILES WITH MATCHES: 0"},
		},
		{
			name:       "search with a quoted phrase",
			args:       []string{"--root", root, "search", "name: Schema"},
			wantStdout: []string{"Task #1 in auth (1 matches)", "TOTAL FILES WITH MATCHES: 1"},
		},
		{
			name:       "search takes a single argument",
			args:       []string{"--root", root, "search", "name:", "Schema"},
			wantCode:   1,
			wantStderr: []string{"pmgraph: error:"},
		},
		{
			name:       "next",
			args:       []string{"--root", root, "next"},
			wantStdout: []string{"No available tasks found."},
		},
		{
			name:       "blocked",
			args:       []string{"--root", root, "blocked"},
			wantStdout: []string{"Task #2 - Login", "Blocked by: [1]"},
		},
		{
			name:       "prd list",
			args:       []string{"--root", root, "prd-list"},
			wantStdout: []string{"BACKLOG PRDs:", "Total PRDs: 1", "Backlog: 1"},
		},
		{
			name:       "validate",
			args:       []string{"--root", root, "validate"},
			wantStdout: []string{"VALIDATING PM SYSTEM", "DIRECTORY STRUCTURE:", "System is healthy!"},
		},
		{
			name:       "validate missing root",
			args:       []string{"--root", filepath.Join(root, "absent"), "validate"},
			wantCode:   2,
			wantStdout: []string{"Corpus root missing", "Errors: 1"},
		},
		{
			name:       "epic status without a name on a missing root",
			args:       []string{"--root", filepath.Join(root, "absent"), "epic-status"},
			wantCode:   1,
			wantStderr: []string{"Please specify an epic name", "Usage:"},
		},
		{
			name:       "status missing root",
			args:       []string{"--root", filepath.Join(root, "absent"), "status"},
			wantCode:   2,
			wantStderr: []string{"cannot access corpus root"},
		},
		{
			name:       "unknown flag",
			args:       []string{"--bogus"},
			wantCode:   1,
			wantStderr: []string{"pmgraph: error:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			assert.Equal(t, tt.wantCode, code, "stdout:\n%s\nstderr:\n%s", stdout, stderr)
			for _, want := range tt.wantStdout {
				assert.Contains(t, stdout, want)
			}
			for _, want := range tt.wantStderr {
				assert.Contains(t, stderr, want)
			}
		})
	}
}

func TestRunSettingsFile(t *testing.T) {
	root := project(t)
	writeFile(t, root, ".claude/pmgraph.yaml", "progress:\n  bar_width: 10\n")

	code, stdout, _ := runCLI(t, "--root", root, "epic-status", "auth")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "[#####-----] 50%")
}

func TestRunCorpusDirFlag(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pm/prds/x.md", "---\nname: x\n---\n")

	code, stdout, _ := runCLI(t, "--root", root, "--corpus-dir", "pm", "status")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Total: 1")
}
