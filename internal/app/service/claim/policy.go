package claim

import (
	"time"

	"github.com/fatflowers/giftflow/pkg/types"
)

// Policy is the single retry/stall policy shared by the issuance and
// dispatch workers. All error classes consume the same attempt budget; a
// stalled in-flight order becomes re-claimable after StallTimeout, which is
// the only crash-recovery mechanism.
type Policy struct {
	MaxAttempts  int
	StallTimeout time.Duration
}

func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, StallTimeout: 15 * time.Minute}
}

// Exhausted reports whether an order with the given attempt count has no
// retries remaining.
func (p Policy) Exhausted(attempts int) bool {
	return attempts >= p.MaxAttempts
}

// NextStatus returns the status an order moves to after a failed attempt.
func (p Policy) NextStatus(attempts int) types.OrderStatus {
	if p.Exhausted(attempts) {
		return types.OrderStatusFailed
	}
	return types.OrderStatusRetrying
}

// StallCutoff returns the instant before which an in-flight claim counts as
// stalled.
func (p Policy) StallCutoff(now time.Time) time.Time {
	return now.UTC().Add(-p.StallTimeout)
}
