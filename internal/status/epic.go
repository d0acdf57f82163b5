package status

import (
	"github.com/kazz187/pmgraph/internal/corpus"
	"github.com/kazz187/pmgraph/internal/graph"
)

// Task is a task together with its derived state.
type Task struct {
	*corpus.Task
	State State
	// WaitingFor lists the declared prerequisites that exist in the epic and
	// are still open. It is informational only.
	WaitingFor []string
}

// Name returns the declared name, falling back to the task id.
func (t Task) Name() string {
	return t.Doc.Meta.NameOr("Task #" + t.ID)
}

// Epic aggregates the task states of one epic.
type Epic struct {
	*corpus.Epic
	Graph *graph.Graph
	Tasks []Task

	Total   int
	Closed  int
	Ready   int
	Blocked int
}

// EvaluateEpic classifies every task of e and counts the results.
func EvaluateEpic(e *corpus.Epic) *Epic {
	nodes := make([]graph.Node, 0, len(e.Tasks))
	for _, t := range e.Tasks {
		nodes = append(nodes, graph.Node{ID: t.ID, DependsOn: t.Doc.Meta.DependsOn})
	}
	out := &Epic{Epic: e, Graph: graph.Build(nodes)}

	states := make(map[string]State, len(e.Tasks))
	for _, t := range e.Tasks {
		states[t.ID] = Classify(t.Doc.Meta)
	}
	for _, t := range e.Tasks {
		st := Task{Task: t, State: states[t.ID]}
		for _, prereq := range out.Graph.Prerequisites(t.ID) {
			if states[prereq] != Closed {
				st.WaitingFor = append(st.WaitingFor, prereq)
			}
		}
		out.Tasks = append(out.Tasks, st)

		out.Total++
		switch st.State {
		case Closed:
			out.Closed++
		case Blocked:
			out.Blocked++
		default:
			out.Ready++
		}
	}
	return out
}

// Open is the number of tasks that are not closed.
func (e *Epic) Open() int {
	return e.Total - e.Closed
}

// Percent returns floor(closed/total*100). ok is false when the epic has no
// tasks, which is rendered as "no tasks created" rather than 0%.
func (e *Epic) Percent() (percent int, ok bool) {
	if e.Total == 0 {
		return 0, false
	}
	return e.Closed * 100 / e.Total, true
}

func (e *Epic) Stage() EpicStage {
	return ClassifyEpic(e.Meta().Status)
}

// TasksIn returns the tasks in the given state, in id order.
func (e *Epic) TasksIn(state State) []Task {
	var out []Task
	for _, t := range e.Tasks {
		if t.State == state {
			out = append(out, t)
		}
	}
	return out
}
