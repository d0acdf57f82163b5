// Package corpus discovers and loads the document tree of a project:
// prds/<slug>.md, epics/<epic>/epic.md, epics/<epic>/<n>.md and the
// per-task progress notes under epics/<epic>/updates/<n>/.
package corpus

import (
	"path"
	"strings"

	"github.com/kazz187/pmgraph/internal/document"
)

// Layout names the fixed locations inside a corpus root.
type Layout struct {
	PRDDir       string
	EpicDir      string
	RuleDir      string
	EpicFile     string
	UpdatesDir   string
	ProgressFile string
}

func DefaultLayout() Layout {
	return Layout{
		PRDDir:       "prds",
		EpicDir:      "epics",
		RuleDir:      "rules",
		EpicFile:     "epic.md",
		UpdatesDir:   "updates",
		ProgressFile: "progress.md",
	}
}

// Classify returns the kind of the document stored at p (slash separated,
// relative to the corpus root).
func (l Layout) Classify(p string) document.Kind {
	if path.Ext(p) != document.Extension {
		return document.KindOther
	}
	parts := strings.Split(p, "/")
	switch {
	case len(parts) == 2 && parts[0] == l.PRDDir:
		return document.KindPRD
	case len(parts) == 3 && parts[0] == l.EpicDir && parts[2] == l.EpicFile:
		return document.KindEpic
	case len(parts) == 3 && parts[0] == l.EpicDir && document.IsTaskFile(parts[2]):
		return document.KindTask
	default:
		return document.KindOther
	}
}

// IsOrphan reports whether p looks like a task file (numeric stem) but lives
// outside any epic directory. Anything below epics/<epic>/, progress notes
// included, belongs to that epic.
func (l Layout) IsOrphan(p string) bool {
	if !document.IsTaskFile(path.Base(p)) {
		return false
	}
	parts := strings.Split(p, "/")
	return len(parts) < 3 || parts[0] != l.EpicDir
}

// hidden reports whether a directory entry is a dot file or dot directory.
// Those are skipped the same way a shell glob skips them.
func hidden(p string) bool {
	return strings.HasPrefix(path.Base(p), ".")
}

// EpicName returns the epic directory name of a path under the epic dir, or
// "" when p is not inside one.
func (l Layout) EpicName(p string) string {
	parts := strings.Split(p, "/")
	if len(parts) < 3 || parts[0] != l.EpicDir {
		return ""
	}
	return parts[1]
}

// progressTask returns the task id of an epics/<e>/updates/<n>/progress.md
// path.
func (l Layout) progressTask(p string) (string, bool) {
	parts := strings.Split(p, "/")
	if len(parts) != 5 || parts[0] != l.EpicDir || parts[2] != l.UpdatesDir || parts[4] != l.ProgressFile {
		return "", false
	}
	return parts[3], true
}
