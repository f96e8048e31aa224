package claim

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/giftflow/internal/models"
	"github.com/fatflowers/giftflow/internal/platform/clock"
	"github.com/fatflowers/giftflow/pkg/types"
)

// Claimer implements the non-blocking exclusive claim protocol. A claim
// selects exactly one eligible order under FOR UPDATE SKIP LOCKED and marks
// it in-flight inside the same transaction, so a concurrent claimant skips
// it rather than waits.
type Claimer struct {
	db     *gorm.DB
	log    *zap.SugaredLogger
	clock  clock.Clock
	policy Policy
}

func NewClaimer(db *gorm.DB, log *zap.SugaredLogger, clk clock.Clock, policy Policy) *Claimer {
	return &Claimer{db: db, log: log, clock: clk, policy: policy}
}

func (c *Claimer) RetryPolicy() Policy { return c.policy }

// ClaimForIssuance picks the oldest paid order whose vouchers are incomplete
// and that is pending, stalled in processing, or retrying with attempts
// remaining. Returns nil when nothing is eligible.
func (c *Claimer) ClaimForIssuance(ctx context.Context) (*models.Order, error) {
	now := c.clock.Now()
	var order *models.Order
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row struct{ ID string }
		err := tx.Raw(
			`SELECT id FROM orders
			 WHERE all_vouchers_generated = ?
			   AND attempts < ?
			   AND (status = ?
			        OR (status = ? AND processing_started_at < ?)
			        OR status = ?)
			 ORDER BY paid_at ASC
			 LIMIT 1
			 FOR UPDATE SKIP LOCKED`,
			false,
			c.policy.MaxAttempts,
			types.OrderStatusPending,
			types.OrderStatusProcessing, c.policy.StallCutoff(now),
			types.OrderStatusRetrying,
		).Scan(&row).Error
		if err != nil {
			return fmt.Errorf("select eligible order: %w", err)
		}
		if row.ID == "" {
			return nil
		}
		if err := tx.Exec(
			`UPDATE orders SET status = ?, processing_started_at = ?, updated_at = ? WHERE id = ?`,
			types.OrderStatusProcessing, now, now, row.ID,
		).Error; err != nil {
			return fmt.Errorf("mark order processing: %w", err)
		}
		order = &models.Order{}
		return tx.Preload("Brand").Preload("Vouchers").Preload("Recipients", func(db *gorm.DB) *gorm.DB {
			return db.Order("row_no ASC")
		}).First(order, "id = ?", row.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ClaimForDispatch picks one order whose vouchers are complete and whose
// delivery is due, immediate sends first, earliest due time first.
func (c *Claimer) ClaimForDispatch(ctx context.Context) (*models.Order, error) {
	now := c.clock.Now()
	var order *models.Order
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row struct{ ID string }
		err := tx.Raw(
			`SELECT id FROM orders
			 WHERE all_vouchers_generated = ?
			   AND notifications_sent = ?
			   AND attempts < ?
			   AND (status = ?
			        OR (status = ? AND processing_started_at < ?)
			        OR status = ?)
			   AND (send_type = ? OR (send_type = ? AND scheduled_at <= ?))
			 ORDER BY CASE WHEN send_type = ? THEN 0 ELSE 1 END,
			          COALESCE(scheduled_at, paid_at) ASC
			 LIMIT 1
			 FOR UPDATE SKIP LOCKED`,
			true,
			false,
			c.policy.MaxAttempts,
			types.OrderStatusVouchersCreated,
			types.OrderStatusSending, c.policy.StallCutoff(now),
			types.OrderStatusRetrying,
			types.SendTypeImmediate, types.SendTypeScheduled, now,
			types.SendTypeImmediate,
		).Scan(&row).Error
		if err != nil {
			return fmt.Errorf("select due order: %w", err)
		}
		if row.ID == "" {
			return nil
		}
		if err := tx.Exec(
			`UPDATE orders SET status = ?, processing_started_at = ?, updated_at = ? WHERE id = ?`,
			types.OrderStatusSending, now, now, row.ID,
		).Error; err != nil {
			return fmt.Errorf("mark order sending: %w", err)
		}
		order = &models.Order{}
		return tx.Preload("Brand").Preload("Vouchers").Preload("Recipients", func(db *gorm.DB) *gorm.DB {
			return db.Order("row_no ASC")
		}).First(order, "id = ?", row.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Release puts a claimed order back without consuming an attempt. Used when
// the dispatch gate finds the order not yet due.
func (c *Claimer) Release(ctx context.Context, orderID string, backTo types.OrderStatus) error {
	now := c.clock.Now()
	return c.db.WithContext(ctx).Exec(
		`UPDATE orders SET status = ?, processing_started_at = NULL, updated_at = ? WHERE id = ?`,
		backTo, now, orderID,
	).Error
}

// RecordFailure consumes one attempt and moves the order to retrying or,
// when the budget is spent, to the terminal failed state. The error text is
// persisted for operators.
func (c *Claimer) RecordFailure(ctx context.Context, order *models.Order, cause error) error {
	attempts := order.Attempts + 1
	status := c.policy.NextStatus(attempts)
	text := cause.Error()
	now := c.clock.Now()

	c.log.Errorw("order attempt failed",
		"order_id", order.ID,
		"attempts", attempts,
		"next_status", status,
		"error", text,
	)
	return c.db.WithContext(ctx).Exec(
		`UPDATE orders SET status = ?, attempts = ?, last_error = ?, updated_at = ? WHERE id = ?`,
		status, attempts, text, now, order.ID,
	).Error
}

// FinalizeIssuanceTx flips the order to vouchers_created inside the caller's
// transaction. The guarded WHERE makes the transition exactly-once: a rerun
// on an already-finalized order reports false.
func (c *Claimer) FinalizeIssuanceTx(ctx context.Context, tx *gorm.DB, orderID string) (bool, error) {
	now := c.clock.Now()
	res := tx.WithContext(ctx).Exec(
		`UPDATE orders
		 SET status = ?, all_vouchers_generated = ?, attempts = 0,
		     last_error = NULL, processing_started_at = NULL, updated_at = ?
		 WHERE id = ? AND status = ? AND all_vouchers_generated = ?`,
		types.OrderStatusVouchersCreated, true, now,
		orderID, types.OrderStatusProcessing, false,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FinalizeDispatchTx flips the order to the terminal completed state inside
// the caller's transaction.
func (c *Claimer) FinalizeDispatchTx(ctx context.Context, tx *gorm.DB, orderID string) (bool, error) {
	now := c.clock.Now()
	res := tx.WithContext(ctx).Exec(
		`UPDATE orders
		 SET status = ?, notifications_sent = ?,
		     last_error = NULL, processing_started_at = NULL, updated_at = ?
		 WHERE id = ? AND status = ? AND notifications_sent = ?`,
		types.OrderStatusCompleted, true, now,
		orderID, types.OrderStatusSending, false,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
