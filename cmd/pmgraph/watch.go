package main

import (
	"context"
	"log/slog"

	"github.com/kazz187/pmgraph/internal/watch"
	"github.com/kazz187/pmgraph/pkg/cerr"
	"github.com/kazz187/pmgraph/pkg/panicerr"
	"github.com/kazz187/pmgraph/pkg/storage"
)

// watch renders the dashboard, then again after every settled change until
// ctx is cancelled. Only local storage can be watched.
func (a *application) watch(ctx context.Context) error {
	local, ok := a.store.(*storage.LocalStorage)
	if !ok {
		return cerr.Usage("watch requires local storage")
	}
	if err := a.status(ctx); err != nil {
		return err
	}
	rerender := panicerr.Func(func(ctx context.Context) {
		slog.InfoContext(ctx, "corpus changed, re-rendering")
		if err := a.out.Separator(); err != nil {
			slog.WarnContext(ctx, "failed to write separator", "error", err)
		}
		if err := a.status(ctx); err != nil {
			slog.WarnContext(ctx, "failed to render status", "error", err)
		}
	}, func(ctx context.Context, err error) {
		slog.ErrorContext(ctx, "status render panicked", "error", err)
	})
	err := watch.New(local.Dir(), watch.DebounceInterval).Run(ctx, rerender)
	if err != nil {
		return cerr.NewError(cerr.Internal, "failed to watch corpus", err)
	}
	return nil
}
