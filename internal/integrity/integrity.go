// Package integrity checks a corpus for structural problems: missing
// directories, epic directories without epic.md, orphaned task files,
// dangling or cyclic depends_on references and documents without a header
// block. Every finding is a warning; only a missing root is an error.
package integrity

import (
	"github.com/kazz187/pmgraph/internal/document"
	"github.com/kazz187/pmgraph/internal/status"
)

// Reference is a depends_on entry that points at no sibling task.
type Reference struct {
	Epic string
	Task string
	Ref  string
}

// Cycle is a dependency loop inside one epic, as a closed path of ids.
type Cycle struct {
	Epic string
	Path []string
}

// Directory is one expected top-level directory of the corpus.
type Directory struct {
	Name   string
	Exists bool
}

type Report struct {
	Root       string
	RootExists bool

	Directories     []Directory
	MissingEpicFile []string
	Orphans         []string
	Dangling        []Reference
	Cycles          []Cycle
	MissingHeader   []string
}

// MissingRoot is the report for a corpus whose root cannot be read.
func MissingRoot(root string) *Report {
	return &Report{Root: root}
}

// Check inspects an evaluated corpus.
func Check(s *status.Snapshot) *Report {
	c := s.Corpus
	r := &Report{
		Root:       c.Root,
		RootExists: true,
		Directories: []Directory{
			{Name: c.Layout.PRDDir, Exists: c.HasPRDDir},
			{Name: c.Layout.EpicDir, Exists: c.HasEpicDir},
			{Name: c.Layout.RuleDir, Exists: c.HasRuleDir},
		},
		Orphans: c.Orphans,
	}
	for _, e := range s.Epics {
		if !e.HasEpicFile {
			r.MissingEpicFile = append(r.MissingEpicFile, e.Name)
		}
		for _, d := range e.Graph.Dangling {
			r.Dangling = append(r.Dangling, Reference{Epic: e.Name, Task: d.Task, Ref: d.Ref})
		}
		for _, path := range e.Graph.Cycles() {
			r.Cycles = append(r.Cycles, Cycle{Epic: e.Name, Path: path})
		}
	}
	for _, doc := range c.Documents {
		switch doc.Kind {
		case document.KindPRD, document.KindEpic, document.KindTask:
			if !doc.HasHeader {
				r.MissingHeader = append(r.MissingHeader, doc.Path)
			}
		}
	}
	return r
}

func (r *Report) Errors() int {
	if !r.RootExists {
		return 1
	}
	return 0
}

// Warnings counts every finding. Files without a header are also reported
// separately by Invalid.
func (r *Report) Warnings() int {
	n := len(r.MissingEpicFile) + len(r.Orphans) + len(r.Dangling) + len(r.Cycles) + len(r.MissingHeader)
	for _, d := range r.Directories {
		if !d.Exists {
			n++
		}
	}
	return n
}

func (r *Report) Invalid() int {
	return len(r.MissingHeader)
}

func (r *Report) Healthy() bool {
	return r.Errors() == 0 && r.Warnings() == 0 && r.Invalid() == 0
}
