package corpus

import (
	"context"
	"iter"
	"log/slog"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/kazz187/pmgraph/internal/document"
	"github.com/kazz187/pmgraph/pkg/cerr"
	"github.com/kazz187/pmgraph/pkg/storage"
)

// Entry is one discovered document path.
type Entry struct {
	Kind    document.Kind
	Path    string
	ModTime time.Time
}

// Scanner enumerates corpus documents from a Storage.
type Scanner struct {
	store  storage.Storage
	layout Layout
	root   string
}

// NewScanner returns a Scanner over store. root is only used in error
// messages.
func NewScanner(store storage.Storage, root string) *Scanner {
	return &Scanner{store: store, layout: DefaultLayout(), root: root}
}

func (s *Scanner) Layout() Layout {
	return s.layout
}

// CheckRoot fails with cerr.Unavailable when the corpus root is absent. It is
// the only fatal condition of a scan.
func (s *Scanner) CheckRoot(ctx context.Context) error {
	ok, err := s.store.Exists(ctx, "")
	if err != nil {
		return cerr.WrapRootError(s.root, err)
	}
	if !ok {
		return cerr.WrapRootError(s.root, storage.ErrNotFound)
	}
	return nil
}

// HasDir reports whether a top-level directory such as prds exists.
func (s *Scanner) HasDir(ctx context.Context, dir string) bool {
	ok, err := s.store.Exists(ctx, dir)
	if err != nil {
		slog.DebugContext(ctx, "failed to stat directory", "path", dir, "error", err)
		return false
	}
	return ok
}

// Documents yields PRD, epic and task entries in lexicographic path order.
// Missing directories contribute nothing; listing failures are logged and
// skipped.
func (s *Scanner) Documents(ctx context.Context) (iter.Seq[Entry], error) {
	if err := s.CheckRoot(ctx); err != nil {
		return nil, err
	}
	groups := []string{s.layout.EpicDir, s.layout.PRDDir}
	slices.Sort(groups)
	return func(yield func(Entry) bool) {
		for _, dir := range groups {
			var next iter.Seq[Entry]
			if dir == s.layout.PRDDir {
				next = s.prds(ctx)
			} else {
				next = s.epics(ctx)
			}
			for e := range next {
				if !yield(e) {
					return
				}
			}
		}
	}, nil
}

// Walk yields every markdown file under the root at any depth, classified
// by location, in lexicographic path order. Dot files and dot directories
// are skipped.
func (s *Scanner) Walk(ctx context.Context) (iter.Seq[Entry], error) {
	if err := s.CheckRoot(ctx); err != nil {
		return nil, err
	}
	return func(yield func(Entry) bool) {
		s.walk(ctx, "", yield)
	}, nil
}

func (s *Scanner) walk(ctx context.Context, dir string, yield func(Entry) bool) bool {
	if ctx.Err() != nil {
		return false
	}
	objects := s.list(ctx, dir)
	dirs := s.listDirs(ctx, dir)

	// Merge files and subdirectories so that the walk stays in path order.
	i, j := 0, 0
	for i < len(objects) || j < len(dirs) {
		if j >= len(dirs) || (i < len(objects) && objects[i].Path < dirs[j]+"/") {
			obj := objects[i]
			i++
			if path.Ext(obj.Path) != document.Extension {
				continue
			}
			if !yield(Entry{Kind: s.layout.Classify(obj.Path), Path: obj.Path, ModTime: obj.ModTime}) {
				return false
			}
			continue
		}
		sub := dirs[j]
		j++
		if !s.walk(ctx, sub, yield) {
			return false
		}
	}
	return true
}

func (s *Scanner) prds(ctx context.Context) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, obj := range s.list(ctx, s.layout.PRDDir) {
			if path.Ext(obj.Path) != document.Extension {
				continue
			}
			if !yield(Entry{Kind: document.KindPRD, Path: obj.Path, ModTime: obj.ModTime}) {
				return
			}
		}
	}
}

func (s *Scanner) epics(ctx context.Context) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, dir := range s.listDirs(ctx, s.layout.EpicDir) {
			for _, obj := range s.list(ctx, dir) {
				kind := s.layout.Classify(obj.Path)
				if kind != document.KindEpic && kind != document.KindTask {
					continue
				}
				if !yield(Entry{Kind: kind, Path: obj.Path, ModTime: obj.ModTime}) {
					return
				}
			}
		}
	}
}

// EpicDirs lists the epic directories, whether or not they hold an epic.md.
func (s *Scanner) EpicDirs(ctx context.Context) []string {
	return s.listDirs(ctx, s.layout.EpicDir)
}

func (s *Scanner) list(ctx context.Context, dir string) []storage.Object {
	objects, err := s.store.List(ctx, dir)
	if err != nil {
		slog.DebugContext(ctx, "failed to list directory", "path", dir, "error", err)
		return nil
	}
	objects = slices.DeleteFunc(objects, func(o storage.Object) bool { return hidden(o.Path) })
	slices.SortFunc(objects, func(a, b storage.Object) int {
		return strings.Compare(a.Path, b.Path)
	})
	return objects
}

func (s *Scanner) listDirs(ctx context.Context, dir string) []string {
	dirs, err := s.store.ListDirs(ctx, dir)
	if err != nil {
		slog.DebugContext(ctx, "failed to list directory", "path", dir, "error", err)
		return nil
	}
	dirs = slices.DeleteFunc(dirs, hidden)
	slices.Sort(dirs)
	return dirs
}
