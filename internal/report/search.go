package report

import (
	"github.com/kazz187/pmgraph/internal/search"
)

// Search writes the grouped matches of a query.
func (r *Renderer) Search(res *search.Result) error {
	r.line("Searching for '%s'...", res.Query)
	r.blank()

	r.section("📄 PRDs:")
	for _, m := range res.PRDs {
		r.line("  • %s (%d matches)", m.Label, m.Count)
	}
	r.noMatches(len(res.PRDs))

	r.section("📚 EPICS:")
	for _, m := range res.Epics {
		r.line("  • %s (%d matches)", m.Label, m.Count)
	}
	r.noMatches(len(res.Epics))

	r.section("📝 TASKS:")
	for _, m := range res.Tasks {
		r.line("  • Task #%s in %s (%d matches)", m.Label, m.Epic, m.Count)
	}
	if n := res.Hidden(); n > 0 {
		r.line("  ... and %d more", n)
	}
	r.noMatches(len(res.Tasks))

	r.line("📊 TOTAL FILES WITH MATCHES: %d", res.TotalFiles)
	return r.done()
}

func (r *Renderer) noMatches(n int) {
	if n == 0 {
		r.line("  No matches")
	}
	r.blank()
}
