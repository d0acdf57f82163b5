package report

import (
	"fmt"

	"github.com/kazz187/pmgraph/internal/status"
)

// Status writes the project dashboard: PRD, epic and task counts.
func (r *Renderer) Status(s *status.Snapshot) error {
	c := s.Corpus
	totals := s.Totals()

	r.title("📊 Project Status")

	r.section("📄 PRDs:")
	if c.HasPRDDir {
		r.line("  Total: %d", totals.PRDs)
	} else {
		r.line("  No PRDs found")
	}
	r.blank()

	r.section("📚 EPICS:")
	if c.HasEpicDir {
		r.line("  Total: %d", totals.Epics)
	} else {
		r.line("  No epics found")
	}
	r.blank()

	r.section("📝 TASKS:")
	if c.HasEpicDir {
		r.line("  Open: %d", totals.Open())
		r.line("  Closed: %d", totals.Closed)
		r.line("  Total: %d", totals.Tasks)
	} else {
		r.line("  No tasks found")
	}
	return r.done()
}

const standupReadyLimit = 3

// Standup writes the daily report: recent changes, work in progress, the
// next ready tasks and quick stats.
func (r *Renderer) Standup(s *status.Snapshot) error {
	now := r.opts.Now()
	r.title(fmt.Sprintf("📅 Daily Standup - %s", now.Format("2006-01-02")))

	r.section("📝 Recent Activity:")
	m := s.ModifiedSince(now.Add(-r.opts.StandupWindow))
	if m.PRDs+m.Epics+m.Tasks == 0 {
		r.line("  No activity in the last %s", r.opts.StandupWindow)
	}
	if m.PRDs > 0 {
		r.line("  • Modified %d PRD(s)", m.PRDs)
	}
	if m.Epics > 0 {
		r.line("  • Updated %d epic(s)", m.Epics)
	}
	if m.Tasks > 0 {
		r.line("  • Worked on %d task(s)", m.Tasks)
	}
	r.blank()

	r.section("🔄 Currently In Progress:")
	activity := s.InProgress()
	if len(activity) == 0 {
		r.line("  (none)")
	}
	for _, a := range activity {
		completion := "0%"
		if a.Progress != nil && a.Progress.Meta.Completion != "" {
			completion = a.Progress.Meta.Completion
		}
		r.line("  • %s/%s - %s complete", a.Epic.Name, a.TaskID, completion)
	}
	r.blank()

	r.section(glyphNext + " Next Available Tasks:")
	ready := s.Tasks(status.Ready)
	if len(ready) == 0 {
		r.line("  (none)")
	}
	for i, t := range ready {
		if i == standupReadyLimit {
			break
		}
		r.line("  • #%s - %s", t.Task.ID, t.Task.Name())
	}
	r.blank()

	totals := s.Totals()
	r.section("📊 Quick Stats:")
	r.line("  Tasks: %d open, %d closed, %d total", totals.Open(), totals.Closed, totals.Tasks)
	return r.done()
}
