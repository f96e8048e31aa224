package claim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/giftflow/pkg/types"
)

func TestPolicy_NextStatus(t *testing.T) {
	p := Policy{MaxAttempts: 3, StallTimeout: 15 * time.Minute}

	require.Equal(t, types.OrderStatusRetrying, p.NextStatus(1))
	require.Equal(t, types.OrderStatusRetrying, p.NextStatus(2))
	require.Equal(t, types.OrderStatusFailed, p.NextStatus(3))
	require.Equal(t, types.OrderStatusFailed, p.NextStatus(4))
}

func TestPolicy_StallCutoff(t *testing.T) {
	p := Policy{MaxAttempts: 3, StallTimeout: 15 * time.Minute}
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	require.Equal(t, now.Add(-15*time.Minute), p.StallCutoff(now))
}
