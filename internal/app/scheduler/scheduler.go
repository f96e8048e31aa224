package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fatflowers/giftflow/pkg/metrics"
	"github.com/fatflowers/giftflow/pkg/types"
)

// Task is one periodic pipeline pass. Run claims and processes at most one
// order, so overlapping work is bounded by the tick, not by batch size.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) (*types.PassResult, error)
}

// Runner drives the pipeline tasks on independent tickers. Each task runs
// once immediately on start, then on every tick until Stop.
type Runner struct {
	log   *zap.SugaredLogger
	tasks []Task

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(log *zap.SugaredLogger, tasks []Task) *Runner {
	return &Runner{log: log, tasks: tasks}
}

func (r *Runner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	for _, task := range r.tasks {
		r.wg.Add(1)
		go r.loop(ctx, task)
	}
}

// Stop cancels all loops and waits for in-flight passes to finish.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context, task Task) {
	defer r.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	r.log.Infow("scheduler task started", "task", task.Name, "interval", task.Interval)
	r.runOnce(ctx, task)
	for {
		select {
		case <-ctx.Done():
			r.log.Infow("scheduler task stopped", "task", task.Name)
			return
		case <-ticker.C:
			r.runOnce(ctx, task)
		}
	}
}

// runOnce drains the backlog: it keeps claiming while orders are actually
// processed, and goes back to sleep on the first empty or failed pass.
func (r *Runner) runOnce(ctx context.Context, task Task) {
	for {
		if ctx.Err() != nil {
			return
		}
		res, err := task.Run(ctx)
		if err != nil {
			r.log.Errorw("scheduler pass failed", "task", task.Name, "error", err)
			return
		}
		metrics.ObservePipelinePass(task.Name, res.Processed, res.Failed)
		if res.Processed > 0 || res.Failed > 0 {
			r.log.Infow("scheduler pass done",
				"task", task.Name, "processed", res.Processed, "failed", res.Failed)
		}
		if res.Processed == 0 && res.Failed == 0 {
			return
		}
	}
}
