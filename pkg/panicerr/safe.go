// Package panicerr converts panics into errors so that a fault in one report
// surfaces as a failed command instead of a crash.
package panicerr

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/panics"
)

// Run calls fn and returns its error. A panic inside fn is recovered and
// returned as an error that carries the panic value and stack.
func Run(ctx context.Context, fn func(context.Context) error) error {
	var (
		catcher panics.Catcher
		err     error
	)
	catcher.Try(func() {
		err = fn(ctx)
	})
	if r := catcher.Recovered(); r != nil {
		return fmt.Errorf("recovered from panic: %w", r.AsError())
	}
	return err
}

// Func adapts a callback without an error result. The recovered panic, if
// any, is passed to onPanic.
func Func(fn func(context.Context), onPanic func(context.Context, error)) func(context.Context) {
	return func(ctx context.Context) {
		err := Run(ctx, func(ctx context.Context) error {
			fn(ctx)
			return nil
		})
		if err != nil {
			onPanic(ctx, err)
		}
	}
}
