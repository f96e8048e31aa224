package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/giftflow/internal/models"
	"github.com/fatflowers/giftflow/internal/platform/clock"
	"github.com/fatflowers/giftflow/pkg/logctx"
	"github.com/fatflowers/giftflow/pkg/tool"
	"github.com/fatflowers/giftflow/pkg/types"
)

var (
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrAlreadyPaidOut     = errors.New("settlement already paid out")
	ErrInvalidPayout      = errors.New("invalid payout amount")
)

// Service maintains the per-brand, per-calendar-month ledgers. Totals move
// only by additive deltas; rows are never recomputed from scratch.
type Service struct {
	db    *gorm.DB
	log   *zap.SugaredLogger
	clock clock.Clock
}

func New(db *gorm.DB, log *zap.SugaredLogger, clk clock.Clock) *Service {
	return &Service{db: db, log: log, clock: clk}
}

// PeriodOf formats the calendar month a time falls into, in UTC.
func PeriodOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// Commission computes the brand's commission and VAT-on-commission for an
// order's gross amount, all in minor units.
func Commission(brand *models.Brand, gross int64, quantity int64) (commission, vat int64) {
	if brand == nil {
		return 0, 0
	}
	switch brand.CommissionMode {
	case types.CommissionModeFixed:
		commission = brand.CommissionFixedFee * quantity
	default:
		commission = gross * brand.CommissionRateBps / 10000
	}
	vat = commission * brand.VATRateBps / 10000
	return commission, vat
}

// activeRowTx returns the open (not paid out) row for brand and period, or
// nil when none exists.
func (s *Service) activeRowTx(ctx context.Context, tx *gorm.DB, brandID, period string) (*models.Settlement, error) {
	var row models.Settlement
	err := tx.WithContext(ctx).
		Where("brand_id = ? AND period = ? AND paid_out = ?", brandID, period, false).
		Order("seq DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// RecordIssuanceTx adds a completed order's sold and outstanding totals to
// the brand's period ledger, creating the row when it is the first of the
// month. Runs inside the caller's finalization transaction so an order
// settles exactly once.
func (s *Service) RecordIssuanceTx(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("nil order")
	}
	period := PeriodOf(order.PaidAt)
	qty := int64(order.Quantity)
	gross := order.UnitValue * qty
	commission, vat := Commission(order.Brand, gross, qty)
	net := gross - commission - vat

	row, err := s.activeRowTx(ctx, tx, order.BrandID, period)
	if err != nil {
		return fmt.Errorf("find settlement row: %w", err)
	}
	if row == nil {
		var maxSeq *int
		if err := tx.WithContext(ctx).Model(&models.Settlement{}).
			Where("brand_id = ? AND period = ?", order.BrandID, period).
			Select("MAX(seq)").Scan(&maxSeq).Error; err != nil {
			return fmt.Errorf("next settlement seq: %w", err)
		}
		seq := 0
		if maxSeq != nil {
			seq = *maxSeq + 1
		}
		row = &models.Settlement{
			ID:       tool.GenerateUUIDV7(),
			BrandID:  order.BrandID,
			Period:   period,
			Seq:      seq,
			Currency: order.Currency,
		}
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			return fmt.Errorf("create settlement row: %w", err)
		}
	}

	now := s.clock.Now()
	res := tx.WithContext(ctx).Model(&models.Settlement{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"sold_quantity":        gorm.Expr("sold_quantity + ?", qty),
			"sold_amount":          gorm.Expr("sold_amount + ?", gross),
			"outstanding_quantity": gorm.Expr("outstanding_quantity + ?", qty),
			"outstanding_amount":   gorm.Expr("outstanding_amount + ?", gross),
			"commission_amount":    gorm.Expr("commission_amount + ?", commission),
			"vat_amount":           gorm.Expr("vat_amount + ?", vat),
			"net_payable":          gorm.Expr("net_payable + ?", net),
			"updated_at":           now,
		})
	if res.Error != nil {
		return fmt.Errorf("apply issuance deltas: %w", res.Error)
	}
	return nil
}

// ApplyRedemptionTx moves applied value from outstanding to redeemed on the
// ledger for the period the redemption falls into. When no row exists yet
// the delta is skipped; rows are never created reactively here.
func (s *Service) ApplyRedemptionTx(ctx context.Context, tx *gorm.DB, brandID string, redeemedAt time.Time, applied int64, voucherExhausted bool) error {
	period := PeriodOf(redeemedAt)
	row, err := s.activeRowTx(ctx, tx, brandID, period)
	if err != nil {
		return fmt.Errorf("find settlement row: %w", err)
	}
	if row == nil {
		logctx.FromCtx(ctx, s.log).Debugw("no settlement row for redemption, skipping delta",
			"brand_id", brandID, "period", period, "applied", applied)
		return nil
	}

	qtyDelta := int64(0)
	if voucherExhausted {
		qtyDelta = 1
	}
	now := s.clock.Now()
	res := tx.WithContext(ctx).Model(&models.Settlement{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"redeemed_quantity":    gorm.Expr("redeemed_quantity + ?", qtyDelta),
			"redeemed_amount":      gorm.Expr("redeemed_amount + ?", applied),
			"outstanding_quantity": gorm.Expr("outstanding_quantity - ?", qtyDelta),
			"outstanding_amount":   gorm.Expr("outstanding_amount - ?", applied),
			"updated_at":           now,
		})
	if res.Error != nil {
		return fmt.Errorf("apply redemption deltas: %w", res.Error)
	}
	return nil
}

// RecordPayout settles a row in full or in part. A partial payout closes the
// row at the paid amount and spins off a successor carrying the unpaid
// remainder, so history is preserved rather than overwritten.
func (s *Service) RecordPayout(ctx context.Context, settlementID string, amount int64) (*models.Settlement, error) {
	if amount <= 0 {
		return nil, ErrInvalidPayout
	}

	var result *models.Settlement
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Settlement
		err := tx.Raw(`SELECT * FROM settlement WHERE id = ? FOR UPDATE`, settlementID).Scan(&row).Error
		if err != nil {
			return fmt.Errorf("lock settlement row: %w", err)
		}
		if row.ID == "" {
			return ErrSettlementNotFound
		}
		if row.PaidOut {
			return ErrAlreadyPaidOut
		}

		now := s.clock.Now()
		if amount >= row.NetPayable {
			// full payout
			if err := tx.Model(&models.Settlement{}).Where("id = ?", row.ID).Updates(map[string]any{
				"paid_out":    true,
				"paid_out_at": now,
				"paid_amount": row.NetPayable,
				"updated_at":  now,
			}).Error; err != nil {
				return fmt.Errorf("mark settlement paid: %w", err)
			}
			row.PaidOut = true
			row.PaidAmount = row.NetPayable
			result = &row
			return nil
		}

		remainder := row.NetPayable - amount
		if err := tx.Model(&models.Settlement{}).Where("id = ?", row.ID).Updates(map[string]any{
			"paid_out":    true,
			"paid_out_at": now,
			"paid_amount": amount,
			"net_payable": amount,
			"updated_at":  now,
		}).Error; err != nil {
			return fmt.Errorf("close partial settlement: %w", err)
		}

		carried := &models.Settlement{
			ID:            tool.GenerateUUIDV7(),
			BrandID:       row.BrandID,
			Period:        row.Period,
			Seq:           row.Seq + 1,
			Currency:      row.Currency,
			NetPayable:    remainder,
			CarriedFromID: &row.ID,
		}
		if err := tx.Create(carried).Error; err != nil {
			return fmt.Errorf("create carried settlement: %w", err)
		}
		logctx.FromCtx(ctx, s.log).Infow("partial payout recorded",
			"settlement_id", row.ID, "paid", amount, "carried_id", carried.ID, "remainder", remainder)
		result = carried
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
