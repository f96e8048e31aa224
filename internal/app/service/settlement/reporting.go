package settlement

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/fatflowers/giftflow/internal/models"
	"github.com/fatflowers/giftflow/pkg/types"
)

// filtersAnd combines multiple CommonFilter into a single clause.Expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

type ScanSettlementsRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanSettlementsResponse struct {
	Items []*models.Settlement `json:"items"`
	Total int64                `json:"total"`
}

// ScanSettlements implements paginated/admin listing with filters.
func (s *Service) ScanSettlements(ctx context.Context, req *ScanSettlementsRequest) (*ScanSettlementsResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.Settlement{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count settlements: %w", err)
	}

	var rows []*models.Settlement
	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy != "" {
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	return &ScanSettlementsResponse{Items: rows, Total: total}, nil
}

type BrandPeriodSummary struct {
	Period              string `json:"period"`
	SoldQuantity        int64  `json:"sold_quantity"`
	SoldAmount          int64  `json:"sold_amount"`
	RedeemedAmount      int64  `json:"redeemed_amount"`
	OutstandingAmount   int64  `json:"outstanding_amount"`
	NetPayable          int64  `json:"net_payable"`
	OutstandingQuantity int64  `json:"outstanding_quantity"`
}

// BrandSummary aggregates a brand's ledger rows by period, newest first.
func (s *Service) BrandSummary(ctx context.Context, brandID string) ([]BrandPeriodSummary, error) {
	var results []BrandPeriodSummary
	err := s.db.WithContext(ctx).Model(&models.Settlement{}).
		Select(`period,
			SUM(sold_quantity) AS sold_quantity,
			SUM(sold_amount) AS sold_amount,
			SUM(redeemed_amount) AS redeemed_amount,
			SUM(outstanding_amount) AS outstanding_amount,
			SUM(net_payable) AS net_payable,
			SUM(outstanding_quantity) AS outstanding_quantity`).
		Where("brand_id = ?", brandID).
		Group("period").
		Order("period DESC").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize settlements: %w", err)
	}
	return results, nil
}
