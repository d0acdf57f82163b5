package status

import (
	"slices"
	"strings"
	"time"

	"github.com/kazz187/pmgraph/internal/corpus"
	"github.com/kazz187/pmgraph/internal/document"
)

// Snapshot is the evaluated state of a whole corpus.
type Snapshot struct {
	Corpus *corpus.Corpus
	Epics  []*Epic
}

func Evaluate(c *corpus.Corpus) *Snapshot {
	s := &Snapshot{Corpus: c}
	for _, e := range c.Epics {
		s.Epics = append(s.Epics, EvaluateEpic(e))
	}
	return s
}

func (s *Snapshot) Epic(name string) *Epic {
	for _, e := range s.Epics {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// EpicNames lists every epic directory name.
func (s *Snapshot) EpicNames() []string {
	names := make([]string, 0, len(s.Epics))
	for _, e := range s.Epics {
		names = append(names, e.Name)
	}
	return names
}

// EpicTask pairs a task with the epic it belongs to.
type EpicTask struct {
	Epic *Epic
	Task Task
}

// Tasks returns every task in the given state, by epic then id.
func (s *Snapshot) Tasks(state State) []EpicTask {
	var out []EpicTask
	for _, e := range s.Epics {
		for _, t := range e.TasksIn(state) {
			out = append(out, EpicTask{Epic: e, Task: t})
		}
	}
	return out
}

// Totals are corpus wide task counts.
type Totals struct {
	PRDs    int
	Epics   int
	Tasks   int
	Closed  int
	Ready   int
	Blocked int
}

func (t Totals) Open() int {
	return t.Tasks - t.Closed
}

func (s *Snapshot) Totals() Totals {
	t := Totals{PRDs: len(s.Corpus.PRDs), Epics: len(s.Epics)}
	for _, e := range s.Epics {
		t.Tasks += e.Total
		t.Closed += e.Closed
		t.Ready += e.Ready
		t.Blocked += e.Blocked
	}
	return t
}

// PRDGroups buckets the PRDs by lifecycle, each in path order.
type PRDGroups struct {
	Backlog     []*corpus.PRD
	InProgress  []*corpus.PRD
	Implemented []*corpus.PRD
}

func (g PRDGroups) Total() int {
	return len(g.Backlog) + len(g.InProgress) + len(g.Implemented)
}

func (s *Snapshot) PRDs() PRDGroups {
	var g PRDGroups
	for _, p := range s.Corpus.PRDs {
		switch ClassifyPRD(p.Doc.Meta.Status) {
		case PRDInProgress:
			g.InProgress = append(g.InProgress, p)
		case PRDImplemented:
			g.Implemented = append(g.Implemented, p)
		default:
			g.Backlog = append(g.Backlog, p)
		}
	}
	return g
}

// RecentPRDs returns up to n PRDs, most recently modified first.
func (s *Snapshot) RecentPRDs(n int) []*corpus.PRD {
	prds := slices.Clone(s.Corpus.PRDs)
	slices.SortStableFunc(prds, func(a, b *corpus.PRD) int {
		if c := b.Doc.ModTime.Compare(a.Doc.ModTime); c != 0 {
			return c
		}
		return strings.Compare(a.Doc.Path, b.Doc.Path)
	})
	if len(prds) > n {
		prds = prds[:n]
	}
	return prds
}

// Activity is a task with an updates directory.
type Activity struct {
	Epic   *Epic
	TaskID string
	// Task is nil when the updates directory names a task that does not
	// exist.
	Task *corpus.Task
	// Progress is nil when updates/<id>/progress.md is missing.
	Progress *document.Document
}

func (s *Snapshot) InProgress() []Activity {
	var out []Activity
	for _, e := range s.Epics {
		for _, u := range e.Updates {
			out = append(out, Activity{Epic: e, TaskID: u.TaskID, Task: e.Task(u.TaskID), Progress: u.Doc})
		}
	}
	return out
}

// ActiveEpics returns epics whose status marks them as being worked on.
func (s *Snapshot) ActiveEpics() []*Epic {
	var out []*Epic
	for _, e := range s.Epics {
		if IsActiveEpic(e.Meta().Status) {
			out = append(out, e)
		}
	}
	return out
}

// Modified counts PRD, epic and task documents changed since a point in time.
type Modified struct {
	PRDs  int
	Epics int
	Tasks int
}

func (s *Snapshot) ModifiedSince(since time.Time) Modified {
	var m Modified
	for _, doc := range s.Corpus.Documents {
		if doc.ModTime.Before(since) {
			continue
		}
		switch doc.Kind {
		case document.KindPRD:
			m.PRDs++
		case document.KindEpic:
			m.Epics++
		case document.KindTask:
			m.Tasks++
		}
	}
	return m
}
