package settlement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/giftflow/internal/models"
	"github.com/fatflowers/giftflow/pkg/tool"
	"github.com/fatflowers/giftflow/pkg/types"
)

func seedLedger(t *testing.T) (*Service, []*models.Settlement) {
	db, svc := newTestService(t)
	rows := []*models.Settlement{
		{ID: tool.GenerateUUIDV7(), BrandID: "brand-1", Period: "2026-01", Currency: "EUR", SoldQuantity: 10, SoldAmount: 50000, NetPayable: 44000, PaidOut: true, PaidAmount: 44000},
		{ID: tool.GenerateUUIDV7(), BrandID: "brand-1", Period: "2026-02", Currency: "EUR", SoldQuantity: 4, SoldAmount: 20000, OutstandingAmount: 20000, OutstandingQuantity: 4, NetPayable: 17600},
		{ID: tool.GenerateUUIDV7(), BrandID: "brand-2", Period: "2026-02", Currency: "EUR", SoldQuantity: 1, SoldAmount: 3000, NetPayable: 2640},
	}
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error)
	}
	return svc, rows
}

func TestScanSettlements_FilterAndPaginate(t *testing.T) {
	svc, _ := seedLedger(t)

	res, err := svc.ScanSettlements(context.Background(), &ScanSettlementsRequest{
		Filters: []*types.CommonFilter{{Field: "brand_id", Operator: types.CommonFilterOperatorEq, Values: []any{"brand-1"}}},
		Size:    10,
		SortBy:  "period",
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), res.Total)
	require.Len(t, res.Items, 2)
	require.Equal(t, "2026-02", res.Items[0].Period, "default sort order is descending")

	res, err = svc.ScanSettlements(context.Background(), &ScanSettlementsRequest{Size: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), res.Total)
	require.Len(t, res.Items, 2)
}

func TestScanSettlements_NilRequest(t *testing.T) {
	svc, _ := seedLedger(t)
	_, err := svc.ScanSettlements(context.Background(), nil)
	require.Error(t, err)
}

func TestBrandSummary_GroupsByPeriod(t *testing.T) {
	svc, _ := seedLedger(t)

	summary, err := svc.BrandSummary(context.Background(), "brand-1")
	require.NoError(t, err)
	require.Len(t, summary, 2)
	require.Equal(t, "2026-02", summary[0].Period)
	require.Equal(t, int64(4), summary[0].SoldQuantity)
	require.Equal(t, int64(20000), summary[0].OutstandingAmount)
	require.Equal(t, "2026-01", summary[1].Period)
	require.Equal(t, int64(50000), summary[1].SoldAmount)
}
