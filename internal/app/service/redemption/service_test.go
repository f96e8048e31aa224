package redemption

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/giftflow/internal/app/service/settlement"
	"github.com/fatflowers/giftflow/internal/models"
	"github.com/fatflowers/giftflow/internal/platform/clock"
	"github.com/fatflowers/giftflow/internal/platform/db/dbtest"
	"github.com/fatflowers/giftflow/pkg/tool"
	"github.com/fatflowers/giftflow/pkg/types"
)

var testStart = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db     *gorm.DB
	clk    *clock.FakeClock
	settle *settlement.Service
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.Open(t)
	clk := clock.NewFakeClock(testStart)
	log := zap.NewNop().Sugar()
	settle := settlement.New(db, log, clk)
	svc := New(db, log, clk, settle)
	return &fixture{db: db, clk: clk, settle: settle, svc: svc}
}

// seedRedeemable creates a brand, a settled order and its vouchers, plus the
// period's ledger row the way issuance finalization would have.
func (f *fixture) seedRedeemable(t *testing.T, quantity int) (*models.Order, []*models.VoucherCode) {
	t.Helper()
	brand := &models.Brand{
		ID:                "brand-1",
		Name:              "Acme Coffee",
		CommissionMode:    types.CommissionModePercent,
		CommissionRateBps: 1000,
		VATRateBps:        2000,
	}
	require.NoError(t, f.db.Create(brand).Error)

	order := &models.Order{
		ID:                   tool.GenerateUUIDV7(),
		BrandID:              brand.ID,
		Brand:                brand,
		Kind:                 types.OrderKindSingle,
		Status:               types.OrderStatusCompleted,
		RedemptionStatus:     types.RedemptionStatusNone,
		Quantity:             quantity,
		UnitValue:            5000,
		Currency:             "EUR",
		PurchaserEmail:       "buyer@example.com",
		RecipientEmail:       "friend@example.com",
		Channel:              types.DeliveryChannelEmail,
		SendType:             types.SendTypeImmediate,
		AllVouchersGenerated: true,
		NotificationsSent:    true,
		PaidAt:               testStart.Add(-time.Hour),
	}
	require.NoError(t, f.db.Create(order).Error)

	vouchers := make([]*models.VoucherCode, 0, quantity)
	for i := 1; i <= quantity; i++ {
		v := &models.VoucherCode{
			ID:             tool.GenerateUUIDV7(),
			OrderID:        order.ID,
			Code:           tool.GenerateUUIDV7()[28:],
			GiftCardID:     fmt.Sprintf("%s-ext-%d", order.ID[:8], i),
			OriginalValue:  5000,
			RemainingValue: 5000,
			ExpiresAt:      testStart.AddDate(0, 12, 0),
			ClaimURL:       "https://gift.example/claim?token=t",
		}
		require.NoError(t, f.db.Create(v).Error)
		vouchers = append(vouchers, v)
	}

	require.NoError(t, f.settle.RecordIssuanceTx(context.Background(), f.db, order))
	return order, vouchers
}

func TestProcess_AppliesAndIsIdempotent(t *testing.T) {
	f := newFixture(t)
	order, vouchers := f.seedRedeemable(t, 1)

	req := &WebhookRequest{
		OrderID: order.ID,
		Transactions: []Transaction{{
			TransactionID: "txn-1",
			GiftCardRef:   vouchers[0].GiftCardID,
			Gateway:       "giftcard",
			Status:        "completed",
			Amount:        2000,
			ProcessedAt:   testStart,
		}},
	}

	res, err := f.svc.Process(context.Background(), "store.example", req)
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)
	require.Zero(t, res.Skipped)

	var v models.VoucherCode
	require.NoError(t, f.db.First(&v, "id = ?", vouchers[0].ID).Error)
	require.Equal(t, int64(3000), v.RemainingValue)
	require.False(t, v.Redeemed)

	var stored models.Order
	require.NoError(t, f.db.First(&stored, "id = ?", order.ID).Error)
	require.Equal(t, types.RedemptionStatusPartiallyRedeemed, stored.RedemptionStatus)

	var entry models.VoucherRedemption
	require.NoError(t, f.db.First(&entry, "transaction_id = ?", "txn-1").Error)
	require.Equal(t, int64(2000), entry.ReportedAmount)
	require.Equal(t, int64(2000), entry.AppliedAmount)

	// replayed delivery: acknowledged, nothing changes
	res, err = f.svc.Process(context.Background(), "store.example", req)
	require.NoError(t, err)
	require.Zero(t, res.Processed)
	require.Equal(t, 1, res.Skipped)

	require.NoError(t, f.db.First(&v, "id = ?", vouchers[0].ID).Error)
	require.Equal(t, int64(3000), v.RemainingValue)

	var entries int64
	require.NoError(t, f.db.Model(&models.VoucherRedemption{}).Count(&entries).Error)
	require.Equal(t, int64(1), entries)
}

func TestProcess_DuplicateTransactionInOneBatch(t *testing.T) {
	f := newFixture(t)
	order, vouchers := f.seedRedeemable(t, 1)

	txn := Transaction{
		TransactionID: "txn-1",
		GiftCardRef:   vouchers[0].GiftCardID,
		Gateway:       "giftcard",
		Status:        "completed",
		Amount:        2000,
		ProcessedAt:   testStart,
	}
	req := &WebhookRequest{
		OrderID:      order.ID,
		Transactions: []Transaction{txn, txn},
	}

	res, err := f.svc.Process(context.Background(), "store.example", req)
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)
	require.Equal(t, 1, res.Skipped)

	var v models.VoucherCode
	require.NoError(t, f.db.First(&v, "id = ?", vouchers[0].ID).Error)
	require.Equal(t, int64(3000), v.RemainingValue)

	var entries int64
	require.NoError(t, f.db.Model(&models.VoucherRedemption{}).Count(&entries).Error)
	require.Equal(t, int64(1), entries)
}

func TestProcess_SameTransactionDifferentStoreIsDistinct(t *testing.T) {
	f := newFixture(t)
	order, vouchers := f.seedRedeemable(t, 1)

	req := &WebhookRequest{
		OrderID: order.ID,
		Transactions: []Transaction{{
			TransactionID: "txn-1",
			GiftCardRef:   vouchers[0].GiftCardID,
			Status:        "completed",
			Amount:        1000,
			ProcessedAt:   testStart,
		}},
	}

	res, err := f.svc.Process(context.Background(), "store-a.example", req)
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)

	res, err = f.svc.Process(context.Background(), "store-b.example", req)
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)

	var v models.VoucherCode
	require.NoError(t, f.db.First(&v, "id = ?", vouchers[0].ID).Error)
	require.Equal(t, int64(3000), v.RemainingValue)
}

func TestProcess_ClampsToRemainingBalance(t *testing.T) {
	f := newFixture(t)
	order, vouchers := f.seedRedeemable(t, 1)

	res, err := f.svc.Process(context.Background(), "store.example", &WebhookRequest{
		OrderID: order.ID,
		Transactions: []Transaction{{
			TransactionID: "txn-big",
			GiftCardRef:   vouchers[0].GiftCardID,
			Status:        "completed",
			Amount:        99999,
			ProcessedAt:   testStart,
		}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)

	var v models.VoucherCode
	require.NoError(t, f.db.First(&v, "id = ?", vouchers[0].ID).Error)
	require.Zero(t, v.RemainingValue, "balance floors at zero")
	require.True(t, v.Redeemed)

	var entry models.VoucherRedemption
	require.NoError(t, f.db.First(&entry, "transaction_id = ?", "txn-big").Error)
	require.Equal(t, int64(99999), entry.ReportedAmount)
	require.Equal(t, int64(5000), entry.AppliedAmount)

	var stored models.Order
	require.NoError(t, f.db.First(&stored, "id = ?", order.ID).Error)
	require.Equal(t, types.RedemptionStatusRedeemed, stored.RedemptionStatus)

	var row models.Settlement
	require.NoError(t, f.db.First(&row, "brand_id = ?", "brand-1").Error)
	require.Equal(t, int64(1), row.RedeemedQuantity)
	require.Equal(t, int64(5000), row.RedeemedAmount)
	require.Zero(t, row.OutstandingQuantity)
	require.Zero(t, row.OutstandingAmount)
}

func TestProcess_ExhaustedVoucherCountedOnce(t *testing.T) {
	f := newFixture(t)
	order, vouchers := f.seedRedeemable(t, 1)

	_, err := f.svc.Process(context.Background(), "store.example", &WebhookRequest{
		OrderID: order.ID,
		Transactions: []Transaction{{
			TransactionID: "txn-1", GiftCardRef: vouchers[0].GiftCardID,
			Status: "completed", Amount: 5000, ProcessedAt: testStart,
		}},
	})
	require.NoError(t, err)

	// a later, distinct transaction against the dead voucher applies zero
	res, err := f.svc.Process(context.Background(), "store.example", &WebhookRequest{
		OrderID: order.ID,
		Transactions: []Transaction{{
			TransactionID: "txn-2", GiftCardRef: vouchers[0].GiftCardID,
			Status: "completed", Amount: 700, ProcessedAt: testStart,
		}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)

	var entry models.VoucherRedemption
	require.NoError(t, f.db.First(&entry, "transaction_id = ?", "txn-2").Error)
	require.Zero(t, entry.AppliedAmount)

	var row models.Settlement
	require.NoError(t, f.db.First(&row, "brand_id = ?", "brand-1").Error)
	require.Equal(t, int64(1), row.RedeemedQuantity, "a voucher is counted redeemed once")
	require.Equal(t, int64(5000), row.RedeemedAmount)
}

func TestProcess_PartialAcrossVouchers(t *testing.T) {
	f := newFixture(t)
	order, vouchers := f.seedRedeemable(t, 2)

	res, err := f.svc.Process(context.Background(), "store.example", &WebhookRequest{
		OrderID: order.ID,
		Transactions: []Transaction{{
			TransactionID: "txn-1", GiftCardRef: vouchers[0].GiftCardID,
			Status: "completed", Amount: 5000, ProcessedAt: testStart,
		}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)

	var stored models.Order
	require.NoError(t, f.db.First(&stored, "id = ?", order.ID).Error)
	require.Equal(t, types.RedemptionStatusPartiallyRedeemed, stored.RedemptionStatus,
		"one open voucher keeps the order partially redeemed")
}

func TestProcess_SkipsUnusableTransactions(t *testing.T) {
	f := newFixture(t)
	order, vouchers := f.seedRedeemable(t, 1)

	res, err := f.svc.Process(context.Background(), "store.example", &WebhookRequest{
		OrderID: order.ID,
		Transactions: []Transaction{
			{TransactionID: "txn-pending", GiftCardRef: vouchers[0].GiftCardID, Status: "pending", Amount: 1000},
			{TransactionID: "txn-zero", GiftCardRef: vouchers[0].GiftCardID, Status: "completed", Amount: 0},
			{TransactionID: "txn-ghost", GiftCardRef: "no-such-card", Status: "completed", Amount: 1000},
			{TransactionID: "txn-good", GiftCardRef: vouchers[0].GiftCardID, Status: "completed", Amount: 1000, ProcessedAt: testStart},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)
	require.Equal(t, 3, res.Skipped)

	var v models.VoucherCode
	require.NoError(t, f.db.First(&v, "id = ?", vouchers[0].ID).Error)
	require.Equal(t, int64(4000), v.RemainingValue)
}

func TestProcess_UnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Process(context.Background(), "store.example", &WebhookRequest{
		OrderID:      tool.GenerateUUIDV7(),
		Transactions: []Transaction{{TransactionID: "txn-1", GiftCardRef: "x", Status: "completed", Amount: 100}},
	})
	require.ErrorIs(t, err, ErrOrderNotFound)
}
