package report

import "strings"

// asciiGlyphs maps every emoji and block character used in reports to a
// plain ASCII tag. Variation-selector forms come first so that they win over
// their bare counterparts.
var asciiGlyphs = []string{
	"\u26a0\ufe0f", "[WARN]",
	"\u23f8\ufe0f", "[PAUSED]",
	"\u23ed\ufe0f", "[NEXT]",
	"\U0001f5c2\ufe0f", "[FILES]",
	"✅", "[OK]",
	"❌", "[ERROR]",
	"\u26a0", "[WARN]",
	"🔍", "[INFO]",
	"📊", "[STATS]",
	"📈", "[GRAPH]",
	"🚀", "[START]",
	"🔄", "[SYNC]",
	"💡", "[TIP]",
	"🎯", "[TARGET]",
	"📄", "[DOC]",
	"📚", "[DOCS]",
	"📋", "[LIST]",
	"📝", "[EDIT]",
	"📁", "[FOLDER]",
	"📂", "[FOLDER]",
	"\U0001f5c2", "[FILES]",
	"\u23f8", "[PAUSED]",
	"\u23ed", "[NEXT]",
	"🚫", "[BLOCKED]",
	"🔗", "[LINK]",
	"📅", "[DATE]",
	"⬜", "[ ]",
	"•", "-",
	"█", "#",
	"░", "-",
}

var asciiReplacer = strings.NewReplacer(asciiGlyphs...)

// ToASCII replaces report glyphs in s with their ASCII tags.
func ToASCII(s string) string {
	return asciiReplacer.Replace(s)
}

// Glyphs that carry a variation selector.
const (
	glyphWarn   = "\u26a0\ufe0f"
	glyphPaused = "\u23f8\ufe0f"
	glyphNext   = "\u23ed\ufe0f"
	glyphFiles  = "\U0001f5c2\ufe0f"
)
