package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fatflowers/giftflow/pkg/types"
)

func TestRunner_RunsTaskImmediatelyAndStops(t *testing.T) {
	var passes atomic.Int64
	r := NewRunner(zap.NewNop().Sugar(), []Task{{
		Name:     "noop",
		Interval: time.Hour,
		Run: func(context.Context) (*types.PassResult, error) {
			passes.Add(1)
			return &types.PassResult{Success: true}, nil
		},
	}})

	r.Start()
	require.Eventually(t, func() bool { return passes.Load() >= 1 }, time.Second, 5*time.Millisecond)
	r.Stop()
	require.Equal(t, int64(1), passes.Load(), "hour-long interval must not tick during the test")
}

func TestRunner_DrainsBacklogOnOneTick(t *testing.T) {
	var passes atomic.Int64
	r := NewRunner(zap.NewNop().Sugar(), []Task{{
		Name:     "backlog",
		Interval: time.Hour,
		Run: func(context.Context) (*types.PassResult, error) {
			// report work done for the first three passes, then empty
			if passes.Add(1) <= 3 {
				return &types.PassResult{Success: true, Processed: 1}, nil
			}
			return &types.PassResult{Success: true}, nil
		},
	}})

	r.Start()
	require.Eventually(t, func() bool { return passes.Load() >= 4 }, time.Second, 5*time.Millisecond)
	r.Stop()
	require.Equal(t, int64(4), passes.Load())
}

func TestRunner_StopsDuringErrors(t *testing.T) {
	var passes atomic.Int64
	r := NewRunner(zap.NewNop().Sugar(), []Task{{
		Name:     "failing",
		Interval: 5 * time.Millisecond,
		Run: func(context.Context) (*types.PassResult, error) {
			passes.Add(1)
			return nil, context.DeadlineExceeded
		},
	}})

	r.Start()
	require.Eventually(t, func() bool { return passes.Load() >= 2 }, time.Second, time.Millisecond)
	r.Stop()
}
