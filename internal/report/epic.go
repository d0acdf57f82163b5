package report

import (
	"path"
	"strconv"
	"strings"

	"github.com/kazz187/pmgraph/internal/status"
)

// EpicList writes the epics grouped by lifecycle stage. Directories without
// an epic.md are left out.
func (r *Renderer) EpicList(s *status.Snapshot) error {
	r.title("📚 Project Epics")

	var listed int
	groups := map[status.EpicStage][]*status.Epic{}
	for _, e := range s.Epics {
		if !e.HasEpicFile {
			continue
		}
		listed++
		groups[e.Stage()] = append(groups[e.Stage()], e)
	}
	if listed == 0 {
		r.line("📁 No epics found.")
		return r.done()
	}

	sections := []struct {
		stage status.EpicStage
		title string
	}{
		{status.EpicPlanning, "📝 Planning:"},
		{status.EpicInProgress, "🚀 In Progress:"},
		{status.EpicCompleted, "✅ Completed:"},
	}
	tasks := 0
	for _, sec := range sections {
		r.section(sec.title)
		if len(groups[sec.stage]) == 0 {
			r.line("   (none)")
		}
		for _, e := range groups[sec.stage] {
			issue := ""
			if n := issueNumber(e.Meta().GitHub); n != "" {
				issue = " (#" + n + ")"
			}
			r.line("   📋 %s%s - %s complete (%d tasks)", path.Join(e.Dir, s.Corpus.Layout.EpicFile), issue, progressOf(e), e.Total)
			tasks += e.Total
		}
		r.blank()
	}

	r.section("📊 Summary")
	r.line("   Total epics: %d", listed)
	r.line("   Total tasks: %d", tasks)
	return r.done()
}

// EpicShow writes the metadata and task list of one epic.
func (r *Renderer) EpicShow(e *status.Epic) error {
	meta := e.Meta()
	r.title("📚 Epic: " + e.Name)

	r.section("📊 Metadata:")
	r.line("  Status: %s", orDefault(meta.Status, "planning"))
	r.line("  Progress: %s", orDefault(meta.Progress, "0%"))
	if meta.GitHub != "" {
		r.line("  GitHub: %s", meta.GitHub)
	}
	r.line("  Created: %s", orDefault(meta.Created, "unknown"))
	r.blank()

	r.section("📝 Tasks:")
	if len(e.Tasks) == 0 {
		r.line("  No tasks created yet")
		return r.done()
	}
	for _, t := range e.Tasks {
		marker := "⬜"
		if t.State == status.Closed {
			marker = r.ok("✅")
		}
		suffix := ""
		if t.Doc.Meta.Parallel {
			suffix = " (parallel)"
		}
		r.line("  %s #%s - %s%s", marker, t.ID, t.Name(), suffix)
	}
	r.blank()

	percent, _ := e.Percent()
	r.section("📈 Statistics:")
	r.line("  Total tasks: %d", e.Total)
	r.line("  Open: %d", e.Open())
	r.line("  Closed: %d", e.Closed)
	r.line("  Completion: %d%%", percent)
	return r.done()
}

// EpicStatus writes the progress bar and state breakdown of one epic.
func (r *Renderer) EpicStatus(e *status.Epic) error {
	r.title("📚 Epic Status: " + e.Name)

	if percent, ok := e.Percent(); ok {
		r.line("Progress: %s %d%%", r.ok(Bar(percent, r.opts.BarWidth)), percent)
	} else {
		r.line("Progress: No tasks created")
	}
	r.blank()

	r.section("📊 Breakdown:")
	r.line("  Total tasks: %d", e.Total)
	r.line("  ✅ Completed: %d", e.Closed)
	r.line("  🔄 Available: %d", e.Ready)
	r.line("  %s Blocked: %d", glyphPaused, e.Blocked)

	if gh := e.Meta().GitHub; gh != "" {
		r.blank()
		r.line("🔗 GitHub: %s", gh)
	}
	return r.done()
}

// issueNumber extracts the trailing number of an issue URL such as
// https://github.com/o/r/issues/12.
func issueNumber(url string) string {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")
	i := strings.LastIndex(url, "/")
	if i < 0 {
		return ""
	}
	tail := url[i+1:]
	if _, err := strconv.ParseUint(tail, 10, 64); err != nil {
		return ""
	}
	return tail
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
