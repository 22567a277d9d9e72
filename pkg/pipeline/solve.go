package pipeline

import (
	"context"
	"errors"
	"runtime"
	"time"

	apperrors "github.com/mvoelker/tourmaline/pkg/errors"
	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// Solve runs the Held-Karp solver on an instance with the solve options
// applied: worker count, memory limit, and deadline. A Parallelism of zero
// uses one worker per CPU.
func Solve(ctx context.Context, inst *tsp.Instance, opts Options) (*tsp.Solution, error) {
	opts.SetSolveDefaults()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	workers := opts.Parallelism
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	sol, err := tsp.Solve(ctx, inst.Matrix,
		tsp.WithParallelism(workers),
		tsp.WithMemoryLimit(opts.MemoryLimit))
	if err != nil {
		return nil, wrapSolveErr(err, opts.Timeout)
	}
	return sol, nil
}

// wrapSolveErr translates solver sentinels into coded errors at the
// pipeline boundary.
func wrapSolveErr(err error, timeout time.Duration) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(apperrors.ErrCodeCanceled, err, "solve exceeded the %s deadline", timeout)
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(apperrors.ErrCodeCanceled, err, "solve canceled")
	case errors.Is(err, tsp.ErrResourceExhausted):
		return apperrors.Wrap(apperrors.ErrCodeResourceExhausted, err, "solve aborted")
	case errors.Is(err, tsp.ErrInvalidMatrix):
		return apperrors.Wrap(apperrors.ErrCodeInvalidMatrix, err, "solve rejected instance")
	default:
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "solve failed")
	}
}
