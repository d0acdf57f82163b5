// Package document defines the three document kinds of the corpus and the
// header block parser shared by all of them.
//
// A document is UTF-8 text with an optional header block fenced by "---"
// lines:
//
//	---
//	name: OAuth setup
//	status: open
//	depends_on: [1, 2]
//	parallel: true
//	---
//
//	# OAuth setup
//
// Missing headers and missing fields are never errors; they read as empty
// values.
package document

import (
	"path"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a document by its place in the corpus.
type Kind int

const (
	KindOther Kind = iota
	KindPRD
	KindEpic
	KindTask
)

func (k Kind) String() string {
	switch k {
	case KindPRD:
		return "prd"
	case KindEpic:
		return "epic"
	case KindTask:
		return "task"
	default:
		return "other"
	}
}

// Document is one parsed file of the corpus.
type Document struct {
	Path      string
	Kind      Kind
	Meta      Metadata
	Body      string
	HasHeader bool
	ModTime   time.Time
}

// Extension is the file extension of every corpus document.
const Extension = ".md"

// IsTaskFile reports whether name (a base name) is a task document: a
// markdown file whose stem is a non-empty run of ASCII digits.
func IsTaskFile(name string) bool {
	if !strings.HasSuffix(name, Extension) {
		return false
	}
	return isNumeric(strings.TrimSuffix(name, Extension))
}

// TaskID returns the identifier of the task stored at p, its numeric stem.
func TaskID(p string) string {
	return strings.TrimSuffix(path.Base(p), Extension)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CompareIDs reports whether id1 sorts before id2. Numeric ids compare by
// value so that 2 precedes 10; anything else falls back to string order.
func CompareIDs(id1, id2 string) bool {
	n1, err1 := strconv.ParseUint(id1, 10, 64)
	n2, err2 := strconv.ParseUint(id2, 10, 64)
	if err1 == nil && err2 == nil && n1 != n2 {
		return n1 < n2
	}
	return id1 < id2
}
