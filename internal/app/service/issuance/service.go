package issuance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/giftflow/internal/app/service/claim"
	"github.com/fatflowers/giftflow/internal/app/service/settlement"
	"github.com/fatflowers/giftflow/internal/models"
	"github.com/fatflowers/giftflow/internal/platform/clock"
	"github.com/fatflowers/giftflow/internal/platform/giftcard"
	"github.com/fatflowers/giftflow/pkg/claimlink"
	"github.com/fatflowers/giftflow/pkg/logctx"
	"github.com/fatflowers/giftflow/pkg/tool"
	"github.com/fatflowers/giftflow/pkg/types"
)

// Issuer creates a redeemable code per request. Satisfied by
// *giftcard.Client; tests substitute a double.
type Issuer interface {
	CreateCard(ctx context.Context, req *giftcard.CreateRequest) (*giftcard.Card, error)
}

// sentinel outcomes of a single voucher write
var (
	errAtTarget       = errors.New("voucher count already at target")
	errDuplicateCode  = errors.New("duplicate code for order")
	errRecipientTaken = errors.New("recipient already linked to a voucher")
)

// Service brings each claimed order's voucher count up to its requested
// quantity, one external issuance call per voucher, in fixed-size batches.
type Service struct {
	db         *gorm.DB
	log        *zap.SugaredLogger
	clock      clock.Clock
	claimer    *claim.Claimer
	issuer     Issuer
	settle     *settlement.Service
	links      *claimlink.Signer
	batchSize  int
	batchDelay time.Duration
}

func New(db *gorm.DB, log *zap.SugaredLogger, clk clock.Clock, claimer *claim.Claimer, issuer Issuer, settle *settlement.Service, links *claimlink.Signer, batchSize int, batchDelay time.Duration) *Service {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &Service{
		db:         db,
		log:        log,
		clock:      clk,
		claimer:    claimer,
		issuer:     issuer,
		settle:     settle,
		links:      links,
		batchSize:  batchSize,
		batchDelay: batchDelay,
	}
}

// RunPass claims at most one eligible order and processes it to completion
// or failure. Per-order errors are absorbed here: they are persisted on the
// order and reported in the result, never propagated, so one bad order
// cannot block the next tick.
func (s *Service) RunPass(ctx context.Context) (*types.PassResult, error) {
	res := &types.PassResult{Timestamp: s.clock.Now()}

	order, err := s.claimer.ClaimForIssuance(ctx)
	if err != nil {
		return nil, fmt.Errorf("claim order for issuance: %w", err)
	}
	if order == nil {
		res.Success = true
		return res, nil
	}

	log := logctx.FromCtx(ctx, s.log)
	log.Infow("issuance pass claimed order", "order_id", order.ID, "quantity", order.Quantity, "kind", order.Kind)

	if err := s.processOrder(ctx, order); err != nil {
		res.Failed = 1
		if rerr := s.claimer.RecordFailure(ctx, order, err); rerr != nil {
			log.Errorw("failed to record order failure", "order_id", order.ID, "error", rerr)
		}
		return res, nil
	}

	res.Processed = 1
	res.Success = true
	return res, nil
}

func (s *Service) processOrder(ctx context.Context, order *models.Order) error {
	if order.Brand == nil {
		return fmt.Errorf("brand configuration missing for order %s", order.ID)
	}

	// Idempotent fast path: a crashed attempt may have issued everything
	// without finalizing.
	done, err := s.tryFinalize(ctx, order)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	for {
		created, err := s.issueBatch(ctx, order)
		if err != nil {
			return err
		}

		done, ferr := s.tryFinalize(ctx, order)
		if ferr != nil {
			return ferr
		}
		if done {
			return nil
		}
		if created == 0 {
			// no more work units but still short of target
			return fmt.Errorf("voucher target unreachable for order %s", order.ID)
		}

		// brief pause between batches so the issuer is not hammered
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.batchDelay):
		}
	}
}

// tryFinalize re-verifies the voucher count inside a fresh strongly-isolated
// transaction and, when the target is met, performs the exactly-once
// finalization transition plus settlement accrual in the same transaction.
func (s *Service) tryFinalize(ctx context.Context, order *models.Order) (bool, error) {
	finalized := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := s.voucherCountTx(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		if count < int64(order.Quantity) {
			return nil
		}

		transitioned, err := s.claimer.FinalizeIssuanceTx(ctx, tx, order.ID)
		if err != nil {
			return fmt.Errorf("finalize issuance: %w", err)
		}
		if transitioned {
			if err := s.settle.RecordIssuanceTx(ctx, tx, order); err != nil {
				return fmt.Errorf("record settlement: %w", err)
			}
		}
		finalized = true
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return false, err
	}
	if finalized {
		logctx.FromCtx(ctx, s.log).Infow("issuance finalized", "order_id", order.ID)
	}
	return finalized, nil
}

func (s *Service) voucherCountTx(ctx context.Context, tx *gorm.DB, orderID string) (int64, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(&models.VoucherCode{}).Where("order_id = ?", orderID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count vouchers: %w", err)
	}
	return count, nil
}

// issueBatch issues up to batchSize vouchers and returns how many were
// persisted. Item-level integrity guards (duplicate code, count reached,
// recipient already linked) are logged and skipped rather than failing the
// order; external call failures propagate.
func (s *Service) issueBatch(ctx context.Context, order *models.Order) (int, error) {
	log := logctx.FromCtx(ctx, s.log)

	count, err := s.voucherCount(ctx, order.ID)
	if err != nil {
		return 0, err
	}
	remaining := int64(order.Quantity) - count
	if remaining <= 0 {
		return 0, nil
	}
	n := s.batchSize
	if int64(n) > remaining {
		n = int(remaining)
	}

	// CSV bulk orders issue one voucher per unlinked recipient, in stable
	// row order; anonymous orders just fill the remaining slots.
	var slots []*models.BulkRecipient
	if order.Kind == types.OrderKindBulkCSV {
		if err := s.db.WithContext(ctx).
			Where("order_id = ? AND voucher_id IS NULL", order.ID).
			Order("row_no ASC").
			Limit(n).
			Find(&slots).Error; err != nil {
			return 0, fmt.Errorf("load unlinked recipients: %w", err)
		}
		if len(slots) == 0 {
			return 0, nil
		}
	} else {
		slots = make([]*models.BulkRecipient, n)
	}

	created := 0
	for _, recipient := range slots {
		card, err := s.issuer.CreateCard(ctx, &giftcard.CreateRequest{
			BrandID:   order.BrandID,
			Amount:    order.UnitValue,
			Currency:  order.Currency,
			Reference: order.ID,
		})
		if err != nil {
			return created, fmt.Errorf("issue gift card: %w", err)
		}

		switch err := s.persistVoucher(ctx, order, card, recipient); {
		case err == nil:
			created++
		case errors.Is(err, errAtTarget):
			// racing duplicate attempt already filled the order
			log.Warnw("voucher count at target, discarding issued card", "order_id", order.ID, "card_id", card.ID)
			return created, nil
		case errors.Is(err, errDuplicateCode):
			log.Warnw("duplicate code for order, skipping", "order_id", order.ID, "card_id", card.ID)
		case errors.Is(err, errRecipientTaken):
			log.Warnw("recipient already linked, skipping", "order_id", order.ID, "card_id", card.ID)
		default:
			return created, fmt.Errorf("persist voucher: %w", err)
		}
	}
	return created, nil
}

func (s *Service) voucherCount(ctx context.Context, orderID string) (int64, error) {
	return s.voucherCountTx(ctx, s.db, orderID)
}

// persistVoucher writes one voucher and its gift-card mirror inside a
// serializable transaction that re-counts first, so a racing writer cannot
// push the order past its requested quantity.
func (s *Service) persistVoucher(ctx context.Context, order *models.Order, card *giftcard.Card, recipient *models.BulkRecipient) error {
	now := s.clock.Now()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := s.voucherCountTx(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		if count >= int64(order.Quantity) {
			return errAtTarget
		}

		var dup int64
		if err := tx.Model(&models.VoucherCode{}).
			Where("order_id = ? AND code = ?", order.ID, card.Code).
			Count(&dup).Error; err != nil {
			return fmt.Errorf("check duplicate code: %w", err)
		}
		if dup > 0 {
			return errDuplicateCode
		}

		mirror := &models.GiftCard{
			ID:         tool.GenerateUUIDV7(),
			ExternalID: card.ID,
			MaskedCode: card.MaskedCode,
			Balance:    card.Balance,
			Currency:   order.Currency,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"masked_code", "balance", "updated_at"}),
		}).Create(mirror).Error; err != nil {
			return fmt.Errorf("upsert gift card mirror: %w", err)
		}

		voucherID := tool.GenerateUUIDV7()
		link, err := s.links.Link(voucherID, now)
		if err != nil {
			return err
		}
		voucher := &models.VoucherCode{
			ID:             voucherID,
			OrderID:        order.ID,
			Code:           card.Code,
			GiftCardID:     card.ID,
			OriginalValue:  order.UnitValue,
			RemainingValue: order.UnitValue,
			ExpiresAt:      order.Brand.VoucherExpiry(now),
			ClaimURL:       link,
		}
		if recipient != nil {
			voucher.RecipientID = &recipient.ID
		}
		if err := tx.Create(voucher).Error; err != nil {
			return fmt.Errorf("create voucher: %w", err)
		}

		if recipient != nil {
			res := tx.Model(&models.BulkRecipient{}).
				Where("id = ? AND voucher_id IS NULL", recipient.ID).
				Updates(map[string]any{"voucher_id": voucher.ID, "updated_at": now})
			if res.Error != nil {
				return fmt.Errorf("link recipient: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return errRecipientTaken
			}
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}
