package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fatflowers/giftflow/internal/models"
	"github.com/fatflowers/giftflow/internal/platform/db/dbtest"
	"github.com/fatflowers/giftflow/pkg/tool"
	"github.com/fatflowers/giftflow/pkg/types"
)

var testStart = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*gorm.DB, *Service) {
	db := dbtest.Open(t)
	return db, New(db, zap.NewNop().Sugar())
}

func seedOrders(t *testing.T, db *gorm.DB) []*models.Order {
	t.Helper()
	require.NoError(t, db.Create(&models.Brand{ID: "brand-1", Name: "Acme Coffee", CommissionMode: types.CommissionModePercent}).Error)
	statuses := []types.OrderStatus{
		types.OrderStatusPending,
		types.OrderStatusCompleted,
		types.OrderStatusFailed,
	}
	orders := make([]*models.Order, 0, len(statuses))
	for i, status := range statuses {
		order := &models.Order{
			ID:             tool.GenerateUUIDV7(),
			BrandID:        "brand-1",
			Kind:           types.OrderKindSingle,
			Status:         status,
			Quantity:       1,
			UnitValue:      5000,
			Currency:       "EUR",
			PurchaserEmail: "buyer@example.com",
			Channel:        types.DeliveryChannelEmail,
			SendType:       types.SendTypeImmediate,
			PaidAt:         testStart.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(order).Error)
		orders = append(orders, order)
	}
	return orders
}

func TestScanOrders_FilterByStatus(t *testing.T) {
	db, svc := newTestService(t)
	seedOrders(t, db)

	res, err := svc.ScanOrders(context.Background(), &ScanOrdersRequest{
		Filters: []*types.CommonFilter{{Field: "status", Operator: types.CommonFilterOperatorEq, Values: []any{"failed"}}},
		Size:    10,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	require.Len(t, res.Items, 1)
	require.Equal(t, types.OrderStatusFailed, res.Items[0].Status)
}

func TestScanOrders_PaginationAndSort(t *testing.T) {
	db, svc := newTestService(t)
	seeded := seedOrders(t, db)

	res, err := svc.ScanOrders(context.Background(), &ScanOrdersRequest{
		Size:      2,
		SortBy:    "paid_at",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), res.Total)
	require.Len(t, res.Items, 2)
	require.Equal(t, seeded[0].ID, res.Items[0].ID)

	res, err = svc.ScanOrders(context.Background(), &ScanOrdersRequest{
		From:      2,
		Size:      2,
		SortBy:    "paid_at",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	require.Equal(t, seeded[2].ID, res.Items[0].ID)
}

func TestGetOrder_LoadsRelationsAndHistory(t *testing.T) {
	db, svc := newTestService(t)
	seeded := seedOrders(t, db)
	order := seeded[1]

	require.NoError(t, db.Create(&models.VoucherCode{
		ID:             tool.GenerateUUIDV7(),
		OrderID:        order.ID,
		Code:           "CODE-1",
		GiftCardID:     "ext-1",
		OriginalValue:  5000,
		RemainingValue: 5000,
		ExpiresAt:      testStart.AddDate(0, 12, 0),
		ClaimURL:       "https://gift.example/claim?token=t",
	}).Error)
	require.NoError(t, db.Create(&models.NotificationDetail{
		ID:      tool.GenerateUUIDV7(),
		OrderID: order.ID,
		Channel: types.DeliveryChannelEmail,
		Target:  "buyer@example.com",
		Status:  types.NotificationStatusDelivered,
	}).Error)

	got, details, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)
	require.NotNil(t, got.Brand)
	require.Len(t, got.Vouchers, 1)
	require.Len(t, details, 1)
	require.Equal(t, types.NotificationStatusDelivered, details[0].Status)
}

func TestGetOrder_NotFound(t *testing.T) {
	_, svc := newTestService(t)

	_, _, err := svc.GetOrder(context.Background(), tool.GenerateUUIDV7())
	require.ErrorIs(t, err, ErrOrderNotFound)
}
