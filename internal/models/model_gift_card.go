package models

import "time"

// GiftCard is the local mirror of the external issuer's object, upserted by
// external id so duplicate issuer responses never create duplicate rows.
type GiftCard struct {
	ID         string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	ExternalID string `gorm:"column:external_id;type:varchar(128);not null;uniqueIndex" json:"external_id"`
	MaskedCode string `gorm:"column:masked_code;type:varchar(80);not null" json:"masked_code"`
	Balance    int64  `gorm:"column:balance;type:bigint;not null" json:"balance"`
	Currency   string `gorm:"column:currency;type:varchar(8);not null" json:"currency"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GiftCard) TableName() string { return "gift_card" }
