package corpus

import (
	"context"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/kazz187/pmgraph/internal/document"
	"github.com/kazz187/pmgraph/pkg/cerr"
)

type PRD struct {
	Slug string
	Doc  *document.Document
}

type Task struct {
	ID   string
	Epic string
	Doc  *document.Document
}

// Update is a task's updates/<id>/ directory. Doc is its progress.md and
// nil when the note is missing.
type Update struct {
	TaskID string
	Doc    *document.Document
}

type Epic struct {
	Name string
	Dir  string
	// Doc is nil when epic.md is missing or could not be read.
	Doc         *document.Document
	HasEpicFile bool
	// Tasks are ordered by numeric id.
	Tasks   []*Task
	Updates []*Update
}

// Meta returns the epic header, empty when there is no readable epic.md.
func (e *Epic) Meta() document.Metadata {
	if e.Doc == nil {
		return document.Metadata{}
	}
	return e.Doc.Meta
}

func (e *Epic) Task(id string) *Task {
	for _, t := range e.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (e *Epic) update(id string) *Update {
	for _, u := range e.Updates {
		if u.TaskID == id {
			return u
		}
	}
	return nil
}

// Corpus is a loaded snapshot of the document tree.
type Corpus struct {
	Root   string
	Layout Layout

	HasPRDDir  bool
	HasEpicDir bool
	HasRuleDir bool

	PRDs  []*PRD
	Epics []*Epic
	// Files lists every markdown file under the root.
	Files []Entry
	// Orphans are task-like files outside any epic directory.
	Orphans []string
	// Documents holds every readable document under the PRD and epic
	// directories, including progress notes, in path order.
	Documents []*document.Document
}

func (c *Corpus) Epic(name string) *Epic {
	for _, e := range c.Epics {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Load reads the whole corpus. PRDs, epics and tasks come from Documents;
// the full walk adds the file list, orphans and the remaining notes.
// Unreadable documents are logged and skipped; only a missing root is an
// error.
func (s *Scanner) Load(ctx context.Context) (*Corpus, error) {
	docs, err := s.Documents(ctx)
	if err != nil {
		return nil, err
	}
	files, err := s.Walk(ctx)
	if err != nil {
		return nil, err
	}
	c := &Corpus{
		Root:       s.root,
		Layout:     s.layout,
		HasPRDDir:  s.HasDir(ctx, s.layout.PRDDir),
		HasEpicDir: s.HasDir(ctx, s.layout.EpicDir),
		HasRuleDir: s.HasDir(ctx, s.layout.RuleDir),
	}

	epics := make(map[string]*Epic)
	for _, dir := range s.EpicDirs(ctx) {
		e := &Epic{Name: path.Base(dir), Dir: dir}
		for _, sub := range s.listDirs(ctx, path.Join(dir, s.layout.UpdatesDir)) {
			e.Updates = append(e.Updates, &Update{TaskID: path.Base(sub)})
		}
		epics[e.Name] = e
		c.Epics = append(c.Epics, e)
	}

	for entry := range docs {
		e := epics[s.layout.EpicName(entry.Path)]
		doc, ok := s.read(ctx, entry)
		if !ok {
			if entry.Kind == document.KindEpic && e != nil {
				e.HasEpicFile = true
			}
			continue
		}
		c.Documents = append(c.Documents, doc)

		switch entry.Kind {
		case document.KindPRD:
			c.PRDs = append(c.PRDs, &PRD{
				Slug: strings.TrimSuffix(path.Base(entry.Path), document.Extension),
				Doc:  doc,
			})
		case document.KindEpic:
			if e != nil {
				e.Doc = doc
				e.HasEpicFile = true
			}
		case document.KindTask:
			if e != nil {
				e.Tasks = append(e.Tasks, &Task{ID: document.TaskID(entry.Path), Epic: e.Name, Doc: doc})
			}
		}
	}

	for entry := range files {
		c.Files = append(c.Files, entry)
		if s.layout.IsOrphan(entry.Path) {
			c.Orphans = append(c.Orphans, entry.Path)
		}
		if entry.Kind != document.KindOther || !s.tracked(entry.Path) {
			continue
		}
		doc, ok := s.read(ctx, entry)
		if !ok {
			continue
		}
		c.Documents = append(c.Documents, doc)
		if id, ok := s.layout.progressTask(entry.Path); ok {
			if e := epics[s.layout.EpicName(entry.Path)]; e != nil {
				if u := e.update(id); u != nil {
					u.Doc = doc
				}
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(c.Documents, func(a, b *document.Document) int { return strings.Compare(a.Path, b.Path) })
	for _, e := range c.Epics {
		slices.SortFunc(e.Tasks, func(a, b *Task) int { return compareIDs(a.ID, b.ID) })
		slices.SortFunc(e.Updates, func(a, b *Update) int { return compareIDs(a.TaskID, b.TaskID) })
	}
	return c, nil
}

// tracked reports whether p is parsed at load time: anything under the PRD
// or epic directories.
func (s *Scanner) tracked(p string) bool {
	top, _, ok := strings.Cut(p, "/")
	return ok && (top == s.layout.PRDDir || top == s.layout.EpicDir)
}

func (s *Scanner) read(ctx context.Context, entry Entry) (*document.Document, bool) {
	data, err := s.store.Read(ctx, entry.Path)
	if err != nil {
		err = cerr.WrapStorageReadError(entry.Path, err)
		slog.DebugContext(ctx, "skipping unreadable document", "path", entry.Path, "error", err)
		return nil, false
	}
	meta, body, hasHeader := document.ParseMetadata(string(data))
	return &document.Document{
		Path:      entry.Path,
		Kind:      entry.Kind,
		Meta:      meta,
		Body:      body,
		HasHeader: hasHeader,
		ModTime:   entry.ModTime,
	}, true
}

func compareIDs(a, b string) int {
	switch {
	case document.CompareIDs(a, b):
		return -1
	case document.CompareIDs(b, a):
		return 1
	default:
		return 0
	}
}
