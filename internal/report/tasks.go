package report

import (
	"strings"

	"github.com/kazz187/pmgraph/internal/status"
)

// Next writes every ready task with its epic and parallel flag.
func (r *Renderer) Next(s *status.Snapshot) error {
	r.title("📋 Next Available Tasks")

	ready := s.Tasks(status.Ready)
	for _, t := range ready {
		r.line("%s #%s - %s", r.ok("✅ Ready:"), t.Task.ID, t.Task.Name())
		r.line("   Epic: %s", t.Epic.Name)
		if t.Task.Doc.Meta.Parallel {
			r.line("   🔄 Can run in parallel")
		}
		r.blank()
	}

	if len(ready) == 0 {
		r.line("No available tasks found.")
		r.blank()
		r.section("💡 Suggestions:")
		r.line("  • Check blocked tasks: pmgraph blocked")
		r.line("  • View all epics: pmgraph epic-list")
		return r.done()
	}
	r.line("📊 Summary: %d tasks ready to start", len(ready))
	return r.done()
}

// Blocked writes every blocked task with its declared dependencies and the
// ones still open.
func (r *Renderer) Blocked(s *status.Snapshot) error {
	r.title("🚫 Blocked Tasks")

	blocked := s.Tasks(status.Blocked)
	for _, t := range blocked {
		r.line("%s #%s - %s", r.warn(glyphPaused+" Task"), t.Task.ID, t.Task.Name())
		r.line("   Epic: %s", t.Epic.Name)
		r.line("   Blocked by: [%s]", strings.Join(t.Task.Doc.Meta.DependsOn, ", "))
		if len(t.Task.WaitingFor) > 0 {
			r.line("   Waiting for: %s", hashList(t.Task.WaitingFor))
		}
		r.blank()
	}

	if len(blocked) == 0 {
		r.line("No blocked tasks found!")
		r.blank()
		r.line("💡 All tasks with dependencies are either completed or in progress.")
		return r.done()
	}
	r.line("📊 Total blocked: %d tasks", len(blocked))
	return r.done()
}

// InProgress writes tasks that have an updates directory, then the epics
// marked active.
func (r *Renderer) InProgress(s *status.Snapshot) error {
	r.title("🔄 In Progress Work")

	activity := s.InProgress()
	epic := ""
	for _, a := range activity {
		if a.Epic.Name != epic {
			if epic != "" {
				r.blank()
			}
			epic = a.Epic.Name
			r.section("📁 Epic: " + epic)
		}
		name := "Task #" + a.TaskID
		if a.Task != nil {
			name = status.Task{Task: a.Task}.Name()
		}
		r.line("  📝 Issue #%s - %s", a.TaskID, name)
		if a.Progress == nil {
			r.line("     Status: no progress file")
			continue
		}
		completion := a.Progress.Meta.Completion
		if completion == "" {
			completion = "0%"
		}
		r.line("     Progress: %s complete", completion)
		if a.Progress.Meta.LastSync != "" {
			r.line("     Last sync: %s", a.Progress.Meta.LastSync)
		}
	}
	if len(activity) > 0 {
		r.blank()
	}

	active := s.ActiveEpics()
	r.section("📚 Active Epics:")
	if len(active) == 0 {
		r.line("  (none)")
	}
	for _, e := range active {
		r.line("  • %s - %s complete", e.Meta().NameOr(e.Name), progressOf(e))
	}
	r.blank()

	total := len(activity) + len(active)
	if total == 0 {
		r.line("No active work items found.")
		r.blank()
		r.line("💡 Start work with: pmgraph next")
		return r.done()
	}
	r.line("📊 Total active items: %d", total)
	return r.done()
}

func hashList(ids []string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = "#" + id
	}
	return strings.Join(out, " ")
}

// progressOf is the declared progress of an epic, 0% when unset.
func progressOf(e *status.Epic) string {
	if p := e.Meta().Progress; p != "" {
		return p
	}
	return "0%"
}
