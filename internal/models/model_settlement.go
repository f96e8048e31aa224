package models

import "time"

// Settlement is the per-brand, per-calendar-month financial ledger. Totals
// move only by additive deltas; a partial payout closes the row and spins
// off a successor (Seq+1) carrying the unpaid remainder.
type Settlement struct {
	ID      string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	BrandID string `gorm:"column:brand_id;type:uuid;not null;uniqueIndex:unique_brand_period_seq,priority:1" json:"brand_id"`
	// Period is the calendar month, formatted YYYY-MM in UTC.
	Period   string `gorm:"column:period;type:varchar(7);not null;uniqueIndex:unique_brand_period_seq,priority:2" json:"period"`
	Seq      int    `gorm:"column:seq;not null;default:0;uniqueIndex:unique_brand_period_seq,priority:3" json:"seq"`
	Currency string `gorm:"column:currency;type:varchar(8);not null" json:"currency"`

	SoldQuantity        int64 `gorm:"column:sold_quantity;type:bigint;not null;default:0" json:"sold_quantity"`
	SoldAmount          int64 `gorm:"column:sold_amount;type:bigint;not null;default:0" json:"sold_amount"`
	RedeemedQuantity    int64 `gorm:"column:redeemed_quantity;type:bigint;not null;default:0" json:"redeemed_quantity"`
	RedeemedAmount      int64 `gorm:"column:redeemed_amount;type:bigint;not null;default:0" json:"redeemed_amount"`
	OutstandingQuantity int64 `gorm:"column:outstanding_quantity;type:bigint;not null;default:0" json:"outstanding_quantity"`
	OutstandingAmount   int64 `gorm:"column:outstanding_amount;type:bigint;not null;default:0" json:"outstanding_amount"`

	CommissionAmount int64 `gorm:"column:commission_amount;type:bigint;not null;default:0" json:"commission_amount"`
	VATAmount        int64 `gorm:"column:vat_amount;type:bigint;not null;default:0" json:"vat_amount"`
	NetPayable       int64 `gorm:"column:net_payable;type:bigint;not null;default:0" json:"net_payable"`

	PaidOut    bool       `gorm:"column:paid_out;not null;default:false" json:"paid_out"`
	PaidOutAt  *time.Time `gorm:"column:paid_out_at;default:null" json:"paid_out_at"`
	PaidAmount int64      `gorm:"column:paid_amount;type:bigint;not null;default:0" json:"paid_amount"`
	// CarriedFromID points at the predecessor row after a partial payout.
	CarriedFromID *string `gorm:"column:carried_from_id;type:uuid;default:null" json:"carried_from_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Settlement) TableName() string { return "settlement" }
