package report

import (
	"strings"

	"github.com/kazz187/pmgraph/internal/integrity"
)

// Validate writes the integrity report. It always completes; the caller
// decides the exit status from the report itself.
func (r *Renderer) Validate(rep *integrity.Report) error {
	r.title("🔍 VALIDATING PM SYSTEM")

	r.section("📁 DIRECTORY STRUCTURE:")
	if !rep.RootExists {
		r.line("  %s", r.fail("❌ Corpus root missing: "+rep.Root))
	} else {
		r.line("  %s", r.ok("✅ Corpus root exists"))
		for _, d := range rep.Directories {
			if d.Exists {
				r.line("  %s", r.ok("✅ "+d.Name+"/ directory exists"))
			} else {
				r.line("  %s", r.warn(glyphWarn+" "+d.Name+"/ directory missing"))
			}
		}
	}
	r.blank()

	if rep.RootExists {
		r.section(glyphFiles + " DATA INTEGRITY:")
		for _, name := range rep.MissingEpicFile {
			r.line("  %s", r.warn(glyphWarn+" Missing epic.md in: "+name))
		}
		if len(rep.Orphans) > 0 {
			r.line("  %s", r.warn(glyphWarn+" Found orphaned task files:"))
			for _, p := range rep.Orphans {
				r.line("     - %s", p)
			}
		}
		if len(rep.MissingEpicFile) == 0 && len(rep.Orphans) == 0 {
			r.line("  %s", r.ok("✅ All epics have epic.md and no orphaned tasks"))
		}
		r.blank()

		r.section("🔗 REFERENCE CHECK:")
		for _, d := range rep.Dangling {
			r.line("  %s", r.warn(glyphWarn+" Task #"+d.Task+" in "+d.Epic+" references missing task: "+d.Ref))
		}
		for _, c := range rep.Cycles {
			r.line("  %s", r.warn(glyphWarn+" Dependency cycle in "+c.Epic+": "+strings.Join(c.Path, " -> ")))
		}
		if len(rep.Dangling) == 0 && len(rep.Cycles) == 0 {
			r.line("  %s", r.ok("✅ All references valid"))
		}
		r.blank()

		r.section("📝 FRONTMATTER VALIDATION:")
		for _, p := range rep.MissingHeader {
			r.line("  %s", r.warn(glyphWarn+" Missing frontmatter: "+p))
		}
		if len(rep.MissingHeader) == 0 {
			r.line("  %s", r.ok("✅ All files have frontmatter"))
		}
		r.blank()
	}

	r.section("📊 VALIDATION SUMMARY:")
	r.line("  Errors: %d", rep.Errors())
	r.line("  Warnings: %d", rep.Warnings())
	r.line("  Invalid files: %d", rep.Invalid())
	r.blank()

	switch {
	case rep.Healthy():
		r.line("%s", r.ok("✅ System is healthy!"))
	case rep.Errors() > 0:
		r.line("%s", r.fail("❌ Validation failed"))
	default:
		r.line("%s", r.warn(glyphWarn+" System has warnings"))
	}
	return r.done()
}
