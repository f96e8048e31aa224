package models

import "time"

// BulkRecipient is one named recipient of a CSV bulk order. Each recipient
// is linked to exactly one voucher; RowNo fixes the processing order.
type BulkRecipient struct {
	ID      string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	OrderID string `gorm:"column:order_id;type:uuid;not null;index:idx_order_row,priority:1" json:"order_id"`
	RowNo   int    `gorm:"column:row_no;not null;index:idx_order_row,priority:2" json:"row_no"`

	Name  string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email string `gorm:"column:email;type:varchar(255);not null" json:"email"`

	VoucherID   *string    `gorm:"column:voucher_id;type:uuid;default:null" json:"voucher_id"`
	Delivered   bool       `gorm:"column:delivered;not null;default:false" json:"delivered"`
	DeliveredAt *time.Time `gorm:"column:delivered_at;default:null" json:"delivered_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BulkRecipient) TableName() string { return "bulk_recipient" }
