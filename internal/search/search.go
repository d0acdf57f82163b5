// Package search runs ad hoc case-insensitive substring queries over the
// corpus. It reads documents directly and does not depend on the status
// engine.
package search

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/kazz187/pmgraph/internal/corpus"
	"github.com/kazz187/pmgraph/internal/document"
	"github.com/kazz187/pmgraph/pkg/cerr"
	"github.com/kazz187/pmgraph/pkg/storage"
)

// ErrEmptyQuery is returned before any scanning when the query is blank.
var ErrEmptyQuery = cerr.Usage("Please provide a search query")

// Match is one document containing the query.
type Match struct {
	Path string
	// Label names the document: the PRD slug, the epic name or the task id.
	Label string
	Epic  string
	// Count is the number of lines containing the query.
	Count int
}

type Result struct {
	Query string
	PRDs  []Match
	Epics []Match
	// Tasks holds at most the configured limit of matches, in path order.
	Tasks []Match
	// TaskMatches is the number of matching tasks before truncation.
	TaskMatches int
	// TotalFiles counts every matching markdown file under the root,
	// including ones outside the three groups.
	TotalFiles int
}

// Hidden returns how many task matches were left out of Tasks.
func (r *Result) Hidden() int {
	return r.TaskMatches - len(r.Tasks)
}

type Searcher struct {
	store     storage.Storage
	scanner   *corpus.Scanner
	taskLimit int
}

func NewSearcher(store storage.Storage, scanner *corpus.Scanner, taskLimit int) *Searcher {
	return &Searcher{store: store, scanner: scanner, taskLimit: taskLimit}
}

func (s *Searcher) Search(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	files, err := s.scanner.Walk(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	layout := s.scanner.Layout()
	res := &Result{Query: query}
	for entry := range files {
		data, err := s.store.Read(ctx, entry.Path)
		if err != nil {
			err = cerr.WrapStorageReadError(entry.Path, err)
			slog.DebugContext(ctx, "skipping unreadable document", "path", entry.Path, "error", err)
			continue
		}
		n := countLines(data, needle)
		if n == 0 {
			continue
		}
		res.TotalFiles++

		m := Match{Path: entry.Path, Count: n}
		switch entry.Kind {
		case document.KindPRD:
			m.Label = strings.TrimSuffix(path.Base(entry.Path), document.Extension)
			res.PRDs = append(res.PRDs, m)
		case document.KindEpic:
			m.Label = layout.EpicName(entry.Path)
			m.Epic = m.Label
			res.Epics = append(res.Epics, m)
		case document.KindTask:
			m.Label = document.TaskID(entry.Path)
			m.Epic = layout.EpicName(entry.Path)
			res.TaskMatches++
			if s.taskLimit <= 0 || len(res.Tasks) < s.taskLimit {
				res.Tasks = append(res.Tasks, m)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// countLines returns the number of lines of data containing needle, which
// must already be lower case.
func countLines(data []byte, needle string) int {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	n := 0
	for scanner.Scan() {
		if strings.Contains(strings.ToLower(scanner.Text()), needle) {
			n++
		}
	}
	return n
}
