package issuance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/giftflow/internal/app/service/claim"
	"github.com/fatflowers/giftflow/internal/app/service/settlement"
	"github.com/fatflowers/giftflow/internal/models"
	"github.com/fatflowers/giftflow/internal/platform/clock"
	"github.com/fatflowers/giftflow/internal/platform/db/dbtest"
	"github.com/fatflowers/giftflow/internal/platform/giftcard"
	"github.com/fatflowers/giftflow/pkg/claimlink"
	"github.com/fatflowers/giftflow/pkg/tool"
	"github.com/fatflowers/giftflow/pkg/types"
)

var testStart = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// fakeIssuer hands out sequential cards and can be told to fail.
type fakeIssuer struct {
	calls int
	fail  error
}

func (f *fakeIssuer) CreateCard(_ context.Context, req *giftcard.CreateRequest) (*giftcard.Card, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	f.calls++
	return &giftcard.Card{
		ID:         fmt.Sprintf("ext-%d", f.calls),
		Code:       fmt.Sprintf("CODE-%04d", f.calls),
		MaskedCode: fmt.Sprintf("****%04d", f.calls),
		Balance:    req.Amount,
		Currency:   req.Currency,
	}, nil
}

type fixture struct {
	db     *gorm.DB
	clk    *clock.FakeClock
	issuer *fakeIssuer
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.Open(t)
	clk := clock.NewFakeClock(testStart)
	log := zap.NewNop().Sugar()
	claimer := claim.NewClaimer(db, log, clk, claim.Policy{MaxAttempts: 3, StallTimeout: 15 * time.Minute})
	settle := settlement.New(db, log, clk)
	issuer := &fakeIssuer{}
	links := claimlink.NewSigner("test-secret", "https://gift.example", 720*time.Hour)
	svc := New(db, log, clk, claimer, issuer, settle, links, 2, 0)
	return &fixture{db: db, clk: clk, issuer: issuer, svc: svc}
}

func (f *fixture) seedBrand(t *testing.T) *models.Brand {
	t.Helper()
	brand := &models.Brand{
		ID:                    "brand-1",
		Name:                  "Acme Coffee",
		VoucherValidityMonths: 6,
		CommissionMode:        types.CommissionModePercent,
		CommissionRateBps:     1000,
		VATRateBps:            2000,
	}
	require.NoError(t, f.db.Create(brand).Error)
	return brand
}

func (f *fixture) seedOrder(t *testing.T, mutate func(*models.Order)) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:             tool.GenerateUUIDV7(),
		BrandID:        "brand-1",
		Kind:           types.OrderKindSingle,
		Status:         types.OrderStatusPending,
		Quantity:       3,
		UnitValue:      5000,
		Currency:       "EUR",
		PurchaserEmail: "buyer@example.com",
		RecipientEmail: "friend@example.com",
		Channel:        types.DeliveryChannelEmail,
		SendType:       types.SendTypeImmediate,
		PaidAt:         testStart.Add(-time.Hour),
	}
	if mutate != nil {
		mutate(order)
	}
	require.NoError(t, f.db.Create(order).Error)
	return order
}

func TestRunPass_EmptyQueue(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.RunPass(context.Background())
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Zero(t, res.Processed)
	require.Zero(t, res.Failed)
}

func TestRunPass_IssuesAllVouchersAndSettles(t *testing.T) {
	f := newFixture(t)
	f.seedBrand(t)
	order := f.seedOrder(t, nil)

	res, err := f.svc.RunPass(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)

	var stored models.Order
	require.NoError(t, f.db.First(&stored, "id = ?", order.ID).Error)
	require.Equal(t, types.OrderStatusVouchersCreated, stored.Status)
	require.True(t, stored.AllVouchersGenerated)
	require.Zero(t, stored.Attempts)

	var vouchers []*models.VoucherCode
	require.NoError(t, f.db.Where("order_id = ?", order.ID).Find(&vouchers).Error)
	require.Len(t, vouchers, 3)
	for _, v := range vouchers {
		require.Equal(t, int64(5000), v.OriginalValue)
		require.Equal(t, int64(5000), v.RemainingValue)
		require.False(t, v.Redeemed)
		require.True(t, v.ExpiresAt.UTC().Equal(testStart.AddDate(0, 6, 0)))
		require.Contains(t, v.ClaimURL, "https://gift.example/claim?token=")
	}

	var mirrors int64
	require.NoError(t, f.db.Model(&models.GiftCard{}).Count(&mirrors).Error)
	require.Equal(t, int64(3), mirrors)

	var row models.Settlement
	require.NoError(t, f.db.First(&row, "brand_id = ? AND period = ?", "brand-1", "2026-03").Error)
	require.Equal(t, int64(3), row.SoldQuantity)
	require.Equal(t, int64(15000), row.SoldAmount)
	require.Equal(t, int64(1500), row.CommissionAmount)
	require.Equal(t, int64(300), row.VATAmount)
	require.Equal(t, int64(13200), row.NetPayable)
}

func TestRunPass_FinalizedOrderNotReclaimed(t *testing.T) {
	f := newFixture(t)
	f.seedBrand(t)
	f.seedOrder(t, nil)

	res, err := f.svc.RunPass(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)

	// second pass sees an empty queue and the ledger stays untouched
	res, err = f.svc.RunPass(context.Background())
	require.NoError(t, err)
	require.Zero(t, res.Processed)

	var row models.Settlement
	require.NoError(t, f.db.First(&row, "brand_id = ?", "brand-1").Error)
	require.Equal(t, int64(3), row.SoldQuantity, "settlement must not double count")
}

func TestRunPass_ResumesPartialIssuance(t *testing.T) {
	f := newFixture(t)
	brand := f.seedBrand(t)
	order := f.seedOrder(t, func(o *models.Order) {
		// crashed mid-issuance: stale in-flight claim with 2 of 3 vouchers
		o.Status = types.OrderStatusProcessing
		o.ProcessingStartedAt = lo.ToPtr(testStart.Add(-time.Hour))
	})
	for i := 0; i < 2; i++ {
		require.NoError(t, f.db.Create(&models.VoucherCode{
			ID:             tool.GenerateUUIDV7(),
			OrderID:        order.ID,
			Code:           fmt.Sprintf("OLD-%d", i),
			GiftCardID:     fmt.Sprintf("old-ext-%d", i),
			OriginalValue:  5000,
			RemainingValue: 5000,
			ExpiresAt:      brand.VoucherExpiry(testStart),
			ClaimURL:       "https://gift.example/claim?token=old",
		}).Error)
	}

	res, err := f.svc.RunPass(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)
	require.Equal(t, 1, f.issuer.calls, "only the missing voucher is issued")

	var count int64
	require.NoError(t, f.db.Model(&models.VoucherCode{}).Where("order_id = ?", order.ID).Count(&count).Error)
	require.Equal(t, int64(3), count)
}

func TestRunPass_AlreadyCompleteJustFinalizes(t *testing.T) {
	f := newFixture(t)
	brand := f.seedBrand(t)
	order := f.seedOrder(t, func(o *models.Order) {
		o.Quantity = 1
		o.Status = types.OrderStatusRetrying
		o.Attempts = 1
	})
	require.NoError(t, f.db.Create(&models.VoucherCode{
		ID:             tool.GenerateUUIDV7(),
		OrderID:        order.ID,
		Code:           "OLD-0",
		GiftCardID:     "old-ext-0",
		OriginalValue:  5000,
		RemainingValue: 5000,
		ExpiresAt:      brand.VoucherExpiry(testStart),
		ClaimURL:       "https://gift.example/claim?token=old",
	}).Error)

	res, err := f.svc.RunPass(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)
	require.Zero(t, f.issuer.calls, "no issuer call when the target is already met")

	var stored models.Order
	require.NoError(t, f.db.First(&stored, "id = ?", order.ID).Error)
	require.Equal(t, types.OrderStatusVouchersCreated, stored.Status)
}

func TestRunPass_IssuerFailureConsumesOneAttempt(t *testing.T) {
	f := newFixture(t)
	f.seedBrand(t)
	order := f.seedOrder(t, nil)
	f.issuer.fail = errors.New("issuer unavailable")

	res, err := f.svc.RunPass(context.Background())
	require.NoError(t, err, "per-order failures never propagate")
	require.Equal(t, 1, res.Failed)

	var stored models.Order
	require.NoError(t, f.db.First(&stored, "id = ?", order.ID).Error)
	require.Equal(t, types.OrderStatusRetrying, stored.Status)
	require.Equal(t, 1, stored.Attempts)
	require.NotNil(t, stored.LastError)
	require.Contains(t, *stored.LastError, "issuer unavailable")

	// recovery: the retrying order is claimable and completes
	f.issuer.fail = nil
	res, err = f.svc.RunPass(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)
}

func TestRunPass_MissingBrandFailsOrder(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t, func(o *models.Order) { o.BrandID = "brand-ghost" })

	res, err := f.svc.RunPass(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Failed)

	var stored models.Order
	require.NoError(t, f.db.First(&stored, "id = ?", order.ID).Error)
	require.Equal(t, 1, stored.Attempts)
}

func TestRunPass_BulkCSVLinksRecipients(t *testing.T) {
	f := newFixture(t)
	f.seedBrand(t)
	order := f.seedOrder(t, func(o *models.Order) {
		o.Kind = types.OrderKindBulkCSV
		o.Quantity = 3
	})
	for i := 1; i <= 3; i++ {
		require.NoError(t, f.db.Create(&models.BulkRecipient{
			ID:      tool.GenerateUUIDV7(),
			OrderID: order.ID,
			RowNo:   i,
			Name:    fmt.Sprintf("Recipient %d", i),
			Email:   fmt.Sprintf("r%d@example.com", i),
		}).Error)
	}

	res, err := f.svc.RunPass(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Processed)

	var recipients []*models.BulkRecipient
	require.NoError(t, f.db.Where("order_id = ?", order.ID).Order("row_no ASC").Find(&recipients).Error)
	require.Len(t, recipients, 3)
	seen := map[string]bool{}
	for _, r := range recipients {
		require.NotNil(t, r.VoucherID, "every recipient gets a voucher")
		require.False(t, seen[*r.VoucherID], "vouchers are linked one to one")
		seen[*r.VoucherID] = true
	}

	var vouchers []*models.VoucherCode
	require.NoError(t, f.db.Where("order_id = ?", order.ID).Find(&vouchers).Error)
	require.Len(t, vouchers, 3)
	for _, v := range vouchers {
		require.NotNil(t, v.RecipientID)
	}
}
