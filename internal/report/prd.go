package report

import (
	"github.com/kazz187/pmgraph/internal/corpus"
	"github.com/kazz187/pmgraph/internal/status"
)

const recentPRDs = 5

// PRDList writes the PRDs grouped by lifecycle with a summary.
func (r *Renderer) PRDList(s *status.Snapshot) error {
	r.title("📋 PRD List")

	groups := s.PRDs()
	if groups.Total() == 0 {
		r.line("📄 No PRDs found.")
		r.line("💡 Add one under %s/", s.Corpus.Layout.PRDDir)
		return r.done()
	}

	sections := []struct {
		title string
		prds  []*corpus.PRD
	}{
		{"🔍 BACKLOG PRDs:", groups.Backlog},
		{"🚀 IN-PROGRESS PRDs:", groups.InProgress},
		{"✅ IMPLEMENTED PRDs:", groups.Implemented},
	}
	for _, sec := range sections {
		r.section(sec.title)
		if len(sec.prds) == 0 {
			r.line("   (none)")
		}
		for _, p := range sec.prds {
			r.line("   📋 %s - %s", p.Doc.Path, orDefault(p.Doc.Meta.Description, "No description"))
		}
		r.blank()
	}

	r.section("📊 PRD Summary")
	r.line("   Total PRDs: %d", groups.Total())
	r.line("   Backlog: %d", len(groups.Backlog))
	r.line("   In-Progress: %d", len(groups.InProgress))
	r.line("   Implemented: %d", len(groups.Implemented))
	return r.done()
}

// PRDStatus writes the lifecycle distribution and the most recently
// modified PRDs.
func (r *Renderer) PRDStatus(s *status.Snapshot) error {
	r.title("📄 PRD Status Report")

	groups := s.PRDs()
	total := groups.Total()
	if total == 0 {
		r.line("No PRDs found.")
		return r.done()
	}

	r.section("📊 Distribution:")
	for _, row := range []struct {
		label string
		count int
	}{
		{"Backlog:    ", len(groups.Backlog)},
		{"In Progress:", len(groups.InProgress)},
		{"Implemented:", len(groups.Implemented)},
	} {
		r.line("  %s %3d %s", row.label, row.count, Bar(row.count*100/total, r.opts.BarWidth))
	}
	r.blank()
	r.line("  Total PRDs: %d", total)
	r.blank()

	r.section("📅 Recent PRDs (last 5 modified):")
	for _, p := range s.RecentPRDs(recentPRDs) {
		r.line("  • %s", p.Doc.Meta.NameOr(p.Slug))
	}
	r.blank()

	r.section("💡 Next Actions:")
	if len(groups.Backlog) > 0 {
		r.line("  • Break backlog PRDs down into epics")
	}
	if len(groups.InProgress) > 0 {
		r.line("  • Track progress on active PRDs: pmgraph epic-list")
	}
	if len(groups.Backlog) == 0 && len(groups.InProgress) == 0 {
		r.line("  • All PRDs are implemented")
	}
	return r.done()
}
