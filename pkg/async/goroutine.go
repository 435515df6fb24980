package async

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"
)

// SafeGo executes fn in a goroutine with panic recovery, an optional timeout
// (none when timeout <= 0) and error logging. A nil logger uses slog.Default().
//
//	async.SafeGo(ctx, logger.Slog(), 5*time.Second, "cache warming", func(ctx context.Context) error {
//		return cache.Warm(ctx)
//	})
func SafeGo(parentCtx context.Context, logger *slog.Logger, timeout time.Duration, taskName string, fn func(context.Context) error) {
	if logger == nil {
		logger = slog.Default()
	}
	go func() {
		ctx, cancel := withTimeout(parentCtx, timeout)
		defer cancel()

		if err := call(ctx, fn); err != nil {
			logger.Error("background task failed", "task", taskName, "error", err)
		}
	}()
}

// Batch runs fn for every item with at most workers running at once and a
// per-item timeout (none when timeout <= 0). The returned slice is indexed like
// items and holds nil for successful items. A panicking item yields an error.
func Batch[T any](ctx context.Context, items []T, workers int, timeout time.Duration,
	fn func(context.Context, T) error) []error {

	errs := make([]error, len(items))

	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, item := range items {
		g.Go(func() error {
			itemCtx, cancel := withTimeout(ctx, timeout)
			defer cancel()
			errs[i] = call(itemCtx, func(ctx context.Context) error {
				return fn(ctx, item)
			})
			return nil
		})
	}
	g.Wait()

	return errs
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// call runs fn and converts a panic into an error carrying the stack
func call(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return fn(ctx)
}
