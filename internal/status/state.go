// Package status derives runtime task states and the per-epic, per-project
// aggregates every report is built from. Nothing is cached between runs.
package status

import (
	"strings"

	"github.com/kazz187/pmgraph/internal/document"
)

// State is the derived state of a task.
type State int

const (
	Ready State = iota
	Blocked
	Closed
)

func (s State) String() string {
	switch s {
	case Ready:
		return "READY"
	case Blocked:
		return "BLOCKED"
	case Closed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// IsClosed reports whether a task status is one of the closed synonyms. Any
// other value, including an empty one, is open.
func IsClosed(status string) bool {
	switch normalize(status) {
	case "closed", "completed":
		return true
	default:
		return false
	}
}

// Classify derives the state of a task from its header. A task that declares
// any dependency is blocked whether or not the prerequisites are closed.
func Classify(meta document.Metadata) State {
	switch {
	case IsClosed(meta.Status):
		return Closed
	case len(meta.DependsOn) > 0:
		return Blocked
	default:
		return Ready
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
