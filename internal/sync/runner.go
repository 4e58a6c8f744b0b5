package sync

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner owns the background execution slot for reconciles. A scheduled
// reconcile runs on its own goroutine with its own context: its latency and
// failures never reach the request that scheduled it. Failures are logged
// and otherwise swallowed — the next scheduled or periodic pass re-drives
// the same state.
type Runner struct {
	reconciler *Reconciler
	log        *slog.Logger
	timeout    time.Duration

	wg sync.WaitGroup
}

// NewRunner constructs a Runner around the given reconciler. timeout bounds
// each background pass so a hung upstream call cannot pin a goroutine
// forever.
func NewRunner(reconciler *Reconciler, log *slog.Logger, timeout time.Duration) *Runner {
	return &Runner{reconciler: reconciler, log: log, timeout: timeout}
}

// ScheduleSync starts one reconcile pass in the background and returns
// immediately. Satisfies service.Syncer.
func (r *Runner) ScheduleSync() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.run(ctx, "scheduled")
	}()
}

// RunPeriodic blocks, running a reconcile every interval until ctx is
// canceled. Call it from its own goroutine.
func (r *Runner) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			passCtx, cancel := context.WithTimeout(ctx, r.timeout)
			r.run(passCtx, "periodic")
			cancel()
		}
	}
}

// Sync runs one reconcile pass synchronously. Used by the on-demand
// /api/sync endpoint, where the officer wants the result.
func (r *Runner) Sync(ctx context.Context) error {
	return r.reconciler.Reconcile(ctx)
}

// Wait blocks until all scheduled background passes finish. Used during
// shutdown.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) run(ctx context.Context, trigger string) {
	start := time.Now()
	if err := r.reconciler.Reconcile(ctx); err != nil {
		r.log.Error("calendar sync failed", "trigger", trigger, "error", err)
		return
	}
	r.log.Info("calendar sync completed", "trigger", trigger, "duration_ms", time.Since(start).Milliseconds())
}
