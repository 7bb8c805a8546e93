package resilience

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/panics"
)

// ErrPanicked marks an error recovered from a panicking unit of work.
var ErrPanicked = errors.New("unit of work panicked")

// Contain runs fn and converts a panic into an error wrapping ErrPanicked.
// A context cancelled before fn starts short-circuits with ctx.Err().
func Contain[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	var (
		out T
		err error
		pc  panics.Catcher
	)
	pc.Try(func() {
		out, err = fn(ctx)
	})
	if recovered := pc.Recovered(); recovered != nil {
		return zero, errors.Wrapf(ErrPanicked, "%v", recovered.Value)
	}
	if err != nil {
		return zero, err
	}

	return out, nil
}
