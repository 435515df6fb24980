// Package async provides safe concurrent execution primitives for background tasks.
//
// SafeGo runs a function in a goroutine with panic recovery and error logging:
//
//	async.SafeGo(ctx, logger.Slog(), 0, "http server", func(ctx context.Context) error {
//		return server.ListenAndServe()
//	})
//
// Batch fans work out over a bounded number of goroutines and collects one
// error per item:
//
//	errs := async.Batch(ctx, checks, 4, 5*time.Second, func(ctx context.Context, c Check) error {
//		return c.Run(ctx)
//	})
//
// # Related Packages
//
//   - pkg/observability: Health checks and shutdown hooks run through Batch
package async
