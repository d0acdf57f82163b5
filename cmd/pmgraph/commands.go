package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kazz187/pmgraph/internal/config"
	"github.com/kazz187/pmgraph/internal/corpus"
	"github.com/kazz187/pmgraph/internal/integrity"
	"github.com/kazz187/pmgraph/internal/report"
	"github.com/kazz187/pmgraph/internal/search"
	"github.com/kazz187/pmgraph/internal/status"
	"github.com/kazz187/pmgraph/pkg/cerr"
	"github.com/kazz187/pmgraph/pkg/storage"
)

// application holds what every command needs once flags and env are
// resolved.
type application struct {
	store    storage.Storage
	root     string
	settings config.Settings
	out      *report.Renderer
}

func (a *application) scanner() *corpus.Scanner {
	return corpus.NewScanner(a.store, a.root)
}

// snapshot loads and evaluates the corpus.
func (a *application) snapshot(ctx context.Context) (*status.Snapshot, error) {
	c, err := a.scanner().Load(ctx)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "corpus loaded", "root", a.root, "prds", len(c.PRDs), "epics", len(c.Epics), "files", len(c.Files))
	return status.Evaluate(c), nil
}

func (a *application) render(ctx context.Context, fn func(*status.Snapshot) error) error {
	s, err := a.snapshot(ctx)
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return cerr.NewError(cerr.Internal, "failed to write report", err)
	}
	return nil
}

func (a *application) status(ctx context.Context) error {
	return a.render(ctx, a.out.Status)
}

func (a *application) standup(ctx context.Context) error {
	return a.render(ctx, a.out.Standup)
}

func (a *application) next(ctx context.Context) error {
	return a.render(ctx, a.out.Next)
}

func (a *application) blocked(ctx context.Context) error {
	return a.render(ctx, a.out.Blocked)
}

func (a *application) inProgress(ctx context.Context) error {
	return a.render(ctx, a.out.InProgress)
}

func (a *application) epicList(ctx context.Context) error {
	return a.render(ctx, a.out.EpicList)
}

func (a *application) prdList(ctx context.Context) error {
	return a.render(ctx, a.out.PRDList)
}

func (a *application) prdStatus(ctx context.Context) error {
	return a.render(ctx, a.out.PRDStatus)
}

func (a *application) epicShow(ctx context.Context, name string) error {
	if name == "" {
		return cerr.Usage("Please provide an epic name\nUsage: pmgraph epic-show <epic-name>")
	}
	return a.render(ctx, func(s *status.Snapshot) error {
		e := s.Epic(name)
		if e == nil {
			return epicNotFound(s, name)
		}
		return a.out.EpicShow(e)
	})
}

func (a *application) epicStatus(ctx context.Context, name string) error {
	if name == "" {
		msg := "Please specify an epic name\nUsage: pmgraph epic-status <epic-name>"
		if s, err := a.snapshot(ctx); err == nil {
			msg += availableEpics(s)
		}
		return cerr.Usage(msg)
	}
	return a.render(ctx, func(s *status.Snapshot) error {
		e := s.Epic(name)
		if e == nil {
			return epicNotFound(s, name)
		}
		return a.out.EpicStatus(e)
	})
}

func (a *application) search(ctx context.Context, query string) error {
	res, err := search.NewSearcher(a.store, a.scanner(), a.settings.Search.TaskLimit).Search(ctx, query)
	if err != nil {
		return err
	}
	if err := a.out.Search(res); err != nil {
		return cerr.NewError(cerr.Internal, "failed to write report", err)
	}
	return nil
}

// validate always renders a report. A missing root is rendered as an error
// report and then returned so the exit status reflects it.
func (a *application) validate(ctx context.Context) error {
	s, err := a.snapshot(ctx)
	if err != nil {
		if !cerr.IsCode(err, cerr.Unavailable) {
			return err
		}
		if werr := a.out.Validate(integrity.MissingRoot(a.root)); werr != nil {
			return cerr.NewError(cerr.Internal, "failed to write report", werr)
		}
		return err
	}
	if err := a.out.Validate(integrity.Check(s)); err != nil {
		return cerr.NewError(cerr.Internal, "failed to write report", err)
	}
	return nil
}

func epicNotFound(s *status.Snapshot, name string) error {
	return cerr.NewError(cerr.NotFound, fmt.Sprintf("Epic not found: %s", name)+availableEpics(s), nil)
}

func availableEpics(s *status.Snapshot) string {
	names := s.EpicNames()
	if len(names) == 0 {
		return "\n\nNo epics found."
	}
	var b strings.Builder
	b.WriteString("\n\nAvailable epics:")
	for _, n := range names {
		b.WriteString("\n  • " + n)
	}
	return b.String()
}
