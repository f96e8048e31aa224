package models

import "time"

// VoucherCode is an issued redeemable instrument backed by an external gift
// card. Creation is append-only; only the redemption webhook mutates
// RemainingValue and Redeemed.
type VoucherCode struct {
	ID      string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	OrderID string `gorm:"column:order_id;type:uuid;not null;index;uniqueIndex:unique_order_code,priority:1" json:"order_id"`
	// RecipientID links a bulk voucher to exactly one recipient row.
	RecipientID *string `gorm:"column:recipient_id;type:uuid;default:null" json:"recipient_id"`

	Code       string `gorm:"column:code;type:varchar(80);not null;uniqueIndex:unique_order_code,priority:2" json:"code"`
	GiftCardID string `gorm:"column:gift_card_id;type:varchar(128);not null;index" json:"gift_card_id"`

	OriginalValue  int64 `gorm:"column:original_value;type:bigint;not null" json:"original_value"`
	RemainingValue int64 `gorm:"column:remaining_value;type:bigint;not null" json:"remaining_value"`
	// Redeemed is true iff RemainingValue reached zero.
	Redeemed bool `gorm:"column:redeemed;not null;default:false" json:"redeemed"`

	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	ClaimURL  string    `gorm:"column:claim_url;type:text;not null" json:"claim_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (VoucherCode) TableName() string { return "voucher_code" }
