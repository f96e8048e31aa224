package models

import (
	"time"

	"github.com/fatflowers/giftflow/pkg/types"
)

// NotificationDetail records one delivery attempt for one recipient and
// channel, progressing pending -> sending -> delivered | failed.
type NotificationDetail struct {
	ID          string                `gorm:"column:id;type:uuid;primary_key" json:"id"`
	OrderID     string                `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	RecipientID *string               `gorm:"column:recipient_id;type:uuid;default:null" json:"recipient_id"`
	Channel     types.DeliveryChannel `gorm:"column:channel;type:varchar(32);not null" json:"channel"`
	Target      string                `gorm:"column:target;type:varchar(255);not null" json:"target"`

	Status            types.NotificationStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	ProviderMessageID *string                  `gorm:"column:provider_message_id;type:varchar(128);default:null" json:"provider_message_id"`
	Error             *string                  `gorm:"column:error;type:text;default:null" json:"error"`
	SentAt            *time.Time               `gorm:"column:sent_at;default:null" json:"sent_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (NotificationDetail) TableName() string { return "notification_detail" }
