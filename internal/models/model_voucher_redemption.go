package models

import (
	"time"

	"gorm.io/datatypes"
)

// VoucherRedemption is an append-only ledger entry for an externally
// reported spend. The (transaction_id, store_url) pair is the idempotency
// boundary for webhook delivery.
type VoucherRedemption struct {
	ID        string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	VoucherID string `gorm:"column:voucher_id;type:uuid;not null;index" json:"voucher_id"`
	OrderID   string `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`

	TransactionID string `gorm:"column:transaction_id;type:varchar(128);not null;uniqueIndex:unique_transaction_store,priority:1" json:"transaction_id"`
	StoreURL      string `gorm:"column:store_url;type:varchar(255);not null;uniqueIndex:unique_transaction_store,priority:2" json:"store_url"`
	Gateway       string `gorm:"column:gateway;type:varchar(64)" json:"gateway"`

	ReportedAmount int64 `gorm:"column:reported_amount;type:bigint;not null" json:"reported_amount"`
	// AppliedAmount = min(reported, remaining balance at apply time).
	AppliedAmount int64 `gorm:"column:applied_amount;type:bigint;not null" json:"applied_amount"`

	// Payload preserves the store's transaction object as received.
	Payload datatypes.JSON `gorm:"column:payload" json:"payload"`

	ProcessedAt time.Time `gorm:"column:processed_at;not null" json:"processed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (VoucherRedemption) TableName() string { return "voucher_redemption" }
