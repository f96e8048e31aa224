package models

import (
	"time"

	"github.com/fatflowers/giftflow/pkg/types"
)

// Order is a paid purchase moving through the fulfillment state machine.
// Created on payment confirmation; only the issuance worker, the dispatch
// worker and the redemption webhook mutate it afterwards.
type Order struct {
	ID      string          `gorm:"column:id;type:uuid;primary_key" json:"id"`
	BrandID string          `gorm:"column:brand_id;type:uuid;not null;index" json:"brand_id"`
	Kind    types.OrderKind `gorm:"column:kind;type:varchar(32);not null" json:"kind"`

	Status           types.OrderStatus      `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	RedemptionStatus types.RedemptionStatus `gorm:"column:redemption_status;type:varchar(32);not null;default:'none'" json:"redemption_status"`

	// Quantity is the requested voucher count; the persisted voucher count
	// never exceeds it.
	Quantity  int    `gorm:"column:quantity;not null" json:"quantity"`
	UnitValue int64  `gorm:"column:unit_value;type:bigint;not null" json:"unit_value"`
	Currency  string `gorm:"column:currency;type:varchar(8);not null" json:"currency"`

	PurchaserEmail string                `gorm:"column:purchaser_email;type:varchar(255);not null" json:"purchaser_email"`
	RecipientEmail string                `gorm:"column:recipient_email;type:varchar(255)" json:"recipient_email"`
	ChatChannelID  string                `gorm:"column:chat_channel_id;type:varchar(128)" json:"chat_channel_id"`
	Channel        types.DeliveryChannel `gorm:"column:channel;type:varchar(32);not null" json:"channel"`

	SendType     types.SendType `gorm:"column:send_type;type:varchar(32);not null" json:"send_type"`
	ScheduledAt  *time.Time     `gorm:"column:scheduled_at;default:null" json:"scheduled_at"`
	BulkGroupKey *string        `gorm:"column:bulk_group_key;type:varchar(128);default:null" json:"bulk_group_key"`

	AllVouchersGenerated bool `gorm:"column:all_vouchers_generated;not null;default:false" json:"all_vouchers_generated"`
	NotificationsSent    bool `gorm:"column:notifications_sent;not null;default:false" json:"notifications_sent"`

	// Attempts is the shared retry counter for both workers; it resets to
	// zero when issuance finalizes so dispatch gets its own budget.
	Attempts            int        `gorm:"column:attempts;not null;default:0" json:"attempts"`
	LastError           *string    `gorm:"column:last_error;type:text;default:null" json:"last_error"`
	ProcessingStartedAt *time.Time `gorm:"column:processing_started_at;default:null" json:"processing_started_at"`

	PaidAt    time.Time `gorm:"column:paid_at;not null;index" json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Brand      *Brand           `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Vouchers   []*VoucherCode   `gorm:"foreignKey:OrderID" json:"vouchers,omitempty"`
	Recipients []*BulkRecipient `gorm:"foreignKey:OrderID" json:"recipients,omitempty"`
}

func (Order) TableName() string { return "orders" }

// Terminal reports whether the pipeline can still act on the order.
func (o *Order) Terminal() bool {
	return o != nil && (o.Status == types.OrderStatusCompleted || o.Status == types.OrderStatusFailed)
}

// DueAt returns the earliest UTC time the order may be delivered.
func (o *Order) DueAt() time.Time {
	if o.SendType == types.SendTypeScheduled && o.ScheduledAt != nil {
		return o.ScheduledAt.UTC()
	}
	return o.PaidAt.UTC()
}
