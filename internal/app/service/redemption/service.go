package redemption

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/giftflow/internal/app/service/settlement"
	"github.com/fatflowers/giftflow/internal/models"
	"github.com/fatflowers/giftflow/internal/platform/clock"
	"github.com/fatflowers/giftflow/pkg/logctx"
	"github.com/fatflowers/giftflow/pkg/tool"
	"github.com/fatflowers/giftflow/pkg/types"
)

var ErrOrderNotFound = errors.New("order not found")

// Transaction is one externally reported spend against a voucher.
type Transaction struct {
	TransactionID string    `json:"transaction_id" binding:"required"`
	GiftCardRef   string    `json:"gift_card_ref" binding:"required"`
	Gateway       string    `json:"gateway"`
	Status        string    `json:"status"`
	Amount        int64     `json:"amount"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// WebhookRequest is the store-side redemption payload.
type WebhookRequest struct {
	OrderID      string        `json:"order_id" binding:"required"`
	Transactions []Transaction `json:"transactions" binding:"required,min=1"`
}

// Result summarizes one webhook delivery.
type Result struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}

// Service applies redemption reports: clamps spends to remaining balance,
// keeps the per-transaction ledger, and cascades status to voucher, order
// and settlement.
type Service struct {
	db     *gorm.DB
	log    *zap.SugaredLogger
	clock  clock.Clock
	settle *settlement.Service
}

func New(db *gorm.DB, log *zap.SugaredLogger, clk clock.Clock, settle *settlement.Service) *Service {
	return &Service{db: db, log: log, clock: clk, settle: settle}
}

// Logger exposes the service logger for handler-level request logs.
func (s *Service) Logger() *zap.SugaredLogger { return s.log }

// Process applies every transaction in the payload. Replays and unusable
// items are skipped, never failed: the webhook contract is at-least-once
// delivery, so a partial batch must still return success for the rest.
func (s *Service) Process(ctx context.Context, storeURL string, req *WebhookRequest) (*Result, error) {
	log := logctx.FromCtx(ctx, s.log)

	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Brand").First(&order, "id = ?", req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order %s: %w", req.OrderID, err)
	}

	res := &Result{}
	for _, txn := range req.Transactions {
		applied, err := s.applyTransaction(ctx, &order, storeURL, &txn)
		if err != nil {
			log.Warnw("redemption transaction skipped",
				"order_id", order.ID, "transaction_id", txn.TransactionID, "store_url", storeURL, "error", err)
			res.Skipped++
			continue
		}
		if applied {
			res.Processed++
		} else {
			res.Skipped++
		}
	}

	log.Infow("redemption webhook processed",
		"order_id", order.ID, "store_url", storeURL, "processed", res.Processed, "skipped", res.Skipped)
	return res, nil
}

// applyTransaction returns (false, nil) for a replayed transaction and
// (false, err) for one that cannot be applied.
func (s *Service) applyTransaction(ctx context.Context, order *models.Order, storeURL string, txn *Transaction) (bool, error) {
	if txn.Status != "" && txn.Status != "completed" {
		return false, fmt.Errorf("status %q is not redeemable", txn.Status)
	}
	if txn.Amount <= 0 {
		return false, fmt.Errorf("non-positive amount %d", txn.Amount)
	}

	// Cheap duplicate check outside the write tx; the unique index and the
	// in-tx recheck below close the race.
	var dupes int64
	err := s.db.WithContext(ctx).Model(&models.VoucherRedemption{}).
		Where("transaction_id = ? AND store_url = ?", txn.TransactionID, storeURL).
		Count(&dupes).Error
	if err != nil {
		return false, fmt.Errorf("check duplicate: %w", err)
	}
	if dupes > 0 {
		return false, nil
	}

	applied := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var again int64
		if err := tx.Model(&models.VoucherRedemption{}).
			Where("transaction_id = ? AND store_url = ?", txn.TransactionID, storeURL).
			Count(&again).Error; err != nil {
			return fmt.Errorf("recheck duplicate: %w", err)
		}
		if again > 0 {
			return nil
		}

		var voucher models.VoucherCode
		if err := tx.Raw(
			"SELECT * FROM voucher_code WHERE order_id = ? AND gift_card_id = ? LIMIT 1 FOR UPDATE",
			order.ID, txn.GiftCardRef,
		).Scan(&voucher).Error; err != nil {
			return fmt.Errorf("lock voucher: %w", err)
		}
		if voucher.ID == "" {
			return fmt.Errorf("no voucher for gift card %s on order %s", txn.GiftCardRef, order.ID)
		}

		// Clamp: never drive the balance below zero, whatever the store
		// reports.
		appliedAmount := txn.Amount
		if appliedAmount > voucher.RemainingValue {
			appliedAmount = voucher.RemainingValue
		}
		remaining := voucher.RemainingValue - appliedAmount
		// exhaustedNow is true only on the transition to zero, so the
		// settlement's redeemed quantity counts each voucher once.
		exhaustedNow := remaining == 0 && !voucher.Redeemed

		now := s.clock.Now()
		processedAt := txn.ProcessedAt
		if processedAt.IsZero() {
			processedAt = now
		}

		payload, err := json.Marshal(txn)
		if err != nil {
			return fmt.Errorf("marshal transaction payload: %w", err)
		}
		entry := &models.VoucherRedemption{
			ID:             tool.GenerateUUIDV7(),
			VoucherID:      voucher.ID,
			OrderID:        order.ID,
			TransactionID:  txn.TransactionID,
			StoreURL:       storeURL,
			Gateway:        txn.Gateway,
			ReportedAmount: txn.Amount,
			AppliedAmount:  appliedAmount,
			Payload:        payload,
			ProcessedAt:    processedAt.UTC(),
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("record redemption: %w", err)
		}

		if err := tx.Model(&models.VoucherCode{}).Where("id = ?", voucher.ID).
			Updates(map[string]any{"remaining_value": remaining, "redeemed": remaining == 0, "updated_at": now}).Error; err != nil {
			return fmt.Errorf("update voucher balance: %w", err)
		}

		if err := s.updateOrderStatusTx(tx, order, now); err != nil {
			return err
		}

		if err := s.settle.ApplyRedemptionTx(ctx, tx, order.BrandID, processedAt, appliedAmount, exhaustedNow); err != nil {
			return fmt.Errorf("apply redemption to settlement: %w", err)
		}

		applied = true
		return nil
	})
	return applied, err
}

// updateOrderStatusTx recomputes redemption_status from the order's voucher
// set: redeemed when every voucher is exhausted, else partially_redeemed.
func (s *Service) updateOrderStatusTx(tx *gorm.DB, order *models.Order, now time.Time) error {
	var open int64
	if err := tx.Model(&models.VoucherCode{}).
		Where("order_id = ? AND redeemed = ?", order.ID, false).
		Count(&open).Error; err != nil {
		return fmt.Errorf("count open vouchers: %w", err)
	}

	status := types.RedemptionStatusPartiallyRedeemed
	if open == 0 {
		status = types.RedemptionStatusRedeemed
	}
	if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]any{"redemption_status": status, "updated_at": now}).Error; err != nil {
		return fmt.Errorf("update order redemption status: %w", err)
	}
	return nil
}
