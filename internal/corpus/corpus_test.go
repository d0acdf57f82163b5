package corpus

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/pmgraph/internal/document"
	"github.com/kazz187/pmgraph/pkg/cerr"
	"github.com/kazz187/pmgraph/pkg/storage"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func newScanner(t *testing.T, root string) *Scanner {
	t.Helper()
	store, err := storage.NewLocalStorage(root)
	require.NoError(t, err)
	return NewScanner(store, root)
}

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "prds/auth.md", "---\nname: auth\nstatus: backlog\n---\n")
	writeFile(t, root, "prds/notes.txt", "ignored")
	writeFile(t, root, "epics/auth/epic.md", "---\nname: auth\nstatus: in-progress\n---\n")
	writeFile(t, root, "epics/auth/10.md", "---\nname: ten\nstatus: open\n---\n")
	writeFile(t, root, "epics/auth/2.md", "---\nname: two\nstatus: closed\n---\n")
	writeFile(t, root, "epics/auth/README.md", "readme")
	writeFile(t, root, "epics/auth/updates/10/progress.md", "---\ncompletion: 50%\n---\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "epics", "auth", "updates", "2"), 0o755))
	writeFile(t, root, "epics/auth/nested/3.md", "numbered note in nested dir")
	writeFile(t, root, "epics/bare/1.md", "no header")
	writeFile(t, root, "5.md", "orphan at root")
	writeFile(t, root, "rules/style.md", "rule")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "epics", "empty"), 0o755))
	return root
}

func TestLayoutClassify(t *testing.T) {
	l := DefaultLayout()
	assert.Equal(t, document.KindPRD, l.Classify("prds/a.md"))
	assert.Equal(t, document.KindOther, l.Classify("prds/sub/a.md"))
	assert.Equal(t, document.KindEpic, l.Classify("epics/a/epic.md"))
	assert.Equal(t, document.KindTask, l.Classify("epics/a/12.md"))
	assert.Equal(t, document.KindOther, l.Classify("epics/a/b/12.md"))
	assert.Equal(t, document.KindOther, l.Classify("epics/12.md"))
	assert.Equal(t, document.KindOther, l.Classify("epics/a/12.txt"))

	assert.True(t, l.IsOrphan("epics/12.md"))
	assert.True(t, l.IsOrphan("prds/3.md"))
	assert.True(t, l.IsOrphan("3.md"))
	assert.False(t, l.IsOrphan("epics/a/updates/3.md"))
	assert.False(t, l.IsOrphan("epics/a/updates/1/2.md"))
	assert.False(t, l.IsOrphan("epics/a/b/12.md"))
	assert.False(t, l.IsOrphan("epics/a/3.md"))
	assert.False(t, l.IsOrphan("epics/a/epic.md"))
}

func TestScannerDocuments(t *testing.T) {
	ctx := context.Background()
	s := newScanner(t, fixture(t))

	seq, err := s.Documents(ctx)
	require.NoError(t, err)
	var got []string
	for e := range seq {
		got = append(got, e.Kind.String()+" "+e.Path)
	}
	assert.Equal(t, []string{
		"task epics/auth/10.md",
		"task epics/auth/2.md",
		"epic epics/auth/epic.md",
		"task epics/bare/1.md",
		"prd prds/auth.md",
	}, got)
}

func TestScannerWalkIsLexicographic(t *testing.T) {
	ctx := context.Background()
	s := newScanner(t, fixture(t))

	seq, err := s.Walk(ctx)
	require.NoError(t, err)
	var paths []string
	for e := range seq {
		paths = append(paths, e.Path)
	}
	assert.Len(t, paths, 10)
	assert.True(t, slices.IsSorted(paths), "%v", paths)
	assert.Contains(t, paths, "rules/style.md")
	assert.NotContains(t, paths, "prds/notes.txt")
}

func TestScannerEarlyStop(t *testing.T) {
	s := newScanner(t, fixture(t))
	seq, err := s.Walk(context.Background())
	require.NoError(t, err)
	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestScannerMissingRoot(t *testing.T) {
	s := newScanner(t, filepath.Join(t.TempDir(), "absent"))
	_, err := s.Documents(context.Background())
	require.Error(t, err)
	assert.True(t, cerr.IsCode(err, cerr.Unavailable))

	_, err = s.Load(context.Background())
	assert.True(t, cerr.IsCode(err, cerr.Unavailable))
}

func TestScannerEmptyRoot(t *testing.T) {
	s := newScanner(t, t.TempDir())
	c, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, c.PRDs)
	assert.Empty(t, c.Epics)
	assert.False(t, c.HasPRDDir)
	assert.False(t, c.HasEpicDir)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	s := newScanner(t, fixture(t))

	c, err := s.Load(ctx)
	require.NoError(t, err)

	assert.True(t, c.HasPRDDir)
	assert.True(t, c.HasEpicDir)
	assert.True(t, c.HasRuleDir)

	require.Len(t, c.PRDs, 1)
	assert.Equal(t, "auth", c.PRDs[0].Slug)
	assert.Equal(t, "backlog", c.PRDs[0].Doc.Meta.Status)

	require.Len(t, c.Epics, 3)
	auth := c.Epic("auth")
	require.NotNil(t, auth)
	assert.True(t, auth.HasEpicFile)
	assert.Equal(t, "in-progress", auth.Meta().Status)
	require.Len(t, auth.Tasks, 2)
	assert.Equal(t, "2", auth.Tasks[0].ID)
	assert.Equal(t, "10", auth.Tasks[1].ID)
	assert.Equal(t, "auth", auth.Tasks[1].Epic)
	require.Len(t, auth.Updates, 2)
	assert.Equal(t, "2", auth.Updates[0].TaskID)
	assert.Nil(t, auth.Updates[0].Doc)
	assert.Equal(t, "10", auth.Updates[1].TaskID)
	assert.Equal(t, "50%", auth.Updates[1].Doc.Meta.Completion)
	assert.NotNil(t, auth.Task("10"))
	assert.Nil(t, auth.Task("3"))

	bare := c.Epic("bare")
	require.NotNil(t, bare)
	assert.False(t, bare.HasEpicFile)
	assert.Nil(t, bare.Doc)
	assert.Equal(t, document.Metadata{}, bare.Meta())
	require.Len(t, bare.Tasks, 1)
	assert.False(t, bare.Tasks[0].Doc.HasHeader)

	empty := c.Epic("empty")
	require.NotNil(t, empty)
	assert.Empty(t, empty.Tasks)
	assert.Nil(t, c.Epic("missing"))

	assert.Equal(t, []string{"5.md"}, c.Orphans)
	assert.Len(t, c.Files, 10)
	// prds, epic, tasks, README, progress note and nested note.
	require.Len(t, c.Documents, 8)
	paths := make([]string, 0, len(c.Documents))
	for _, d := range c.Documents {
		paths = append(paths, d.Path)
	}
	assert.True(t, slices.IsSorted(paths), "%v", paths)
}

func TestLoadSkipsHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "epics/auth/epic.md", "---\nname: auth\n---\n")
	writeFile(t, root, "epics/.archived/old/epic.md", "---\nname: old\n---\n")
	writeFile(t, root, "epics/.archived/3.md", "archived task")
	writeFile(t, root, "epics/auth/.draft.md", "draft")
	writeFile(t, root, "prds/.template.md", "---\nname: template\n---\n")

	c, err := newScanner(t, root).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, c.Epics, 1)
	assert.Equal(t, "auth", c.Epics[0].Name)
	assert.Empty(t, c.PRDs)
	assert.Empty(t, c.Orphans)
	require.Len(t, c.Files, 1)
	assert.Equal(t, "epics/auth/epic.md", c.Files[0].Path)
}

func TestLoadUpdateNotesAreNotOrphans(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "epics/auth/epic.md", "---\nname: auth\n---\n")
	writeFile(t, root, "epics/auth/1.md", "---\nstatus: open\n---\n")
	writeFile(t, root, "epics/auth/updates/1/2.md", "second progress note")

	c, err := newScanner(t, root).Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, c.Orphans)
	auth := c.Epic("auth")
	require.NotNil(t, auth)
	require.Len(t, auth.Tasks, 1)
	require.Len(t, auth.Updates, 1)
	assert.Equal(t, "1", auth.Updates[0].TaskID)
	assert.Nil(t, auth.Updates[0].Doc)
}

// failingStore fails every Read of the listed paths.
type failingStore struct {
	storage.Storage
	fail map[string]bool
}

func (s failingStore) Read(ctx context.Context, p string) ([]byte, error) {
	if s.fail[p] {
		return nil, errors.New("permission denied")
	}
	return s.Storage.Read(ctx, p)
}

func TestLoadSkipsUnreadableDocuments(t *testing.T) {
	root := fixture(t)
	local, err := storage.NewLocalStorage(root)
	require.NoError(t, err)
	store := failingStore{Storage: local, fail: map[string]bool{
		"epics/auth/10.md":   true,
		"epics/auth/epic.md": true,
	}}

	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	c, err := NewScanner(store, root).Load(context.Background())
	require.NoError(t, err)

	auth := c.Epic("auth")
	require.NotNil(t, auth)
	assert.True(t, auth.HasEpicFile)
	assert.Nil(t, auth.Doc)
	require.Len(t, auth.Tasks, 1)
	assert.Equal(t, "2", auth.Tasks[0].ID)
	assert.Len(t, c.Files, 10)
	assert.Contains(t, logs.String(), "[internal] failed to read epics/auth/10.md: permission denied")
}
