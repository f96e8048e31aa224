package models

import (
	"time"

	"github.com/fatflowers/giftflow/pkg/types"
)

// Brand carries the voucher and commission configuration the pipeline reads.
// Brand CRUD itself lives outside this service.
type Brand struct {
	ID           string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Name         string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	ContactEmail string `gorm:"column:contact_email;type:varchar(255)" json:"contact_email"`

	// VoucherValidityMonths controls the expiry stamped on issued vouchers.
	VoucherValidityMonths int `gorm:"column:voucher_validity_months;not null;default:12" json:"voucher_validity_months"`

	CommissionMode types.CommissionMode `gorm:"column:commission_mode;type:varchar(32);not null" json:"commission_mode"`
	// CommissionRateBps applies in percent_of_gross mode, in basis points.
	CommissionRateBps int64 `gorm:"column:commission_rate_bps;type:bigint;not null;default:0" json:"commission_rate_bps"`
	// CommissionFixedFee applies in fixed_per_unit mode, in minor units.
	CommissionFixedFee int64 `gorm:"column:commission_fixed_fee;type:bigint;not null;default:0" json:"commission_fixed_fee"`
	// VATRateBps is charged on the commission, in basis points.
	VATRateBps int64 `gorm:"column:vat_rate_bps;type:bigint;not null;default:0" json:"vat_rate_bps"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Brand) TableName() string { return "brand" }

// VoucherExpiry computes the expiry for a voucher issued at the given time.
func (b *Brand) VoucherExpiry(issuedAt time.Time) time.Time {
	months := 12
	if b != nil && b.VoucherValidityMonths > 0 {
		months = b.VoucherValidityMonths
	}
	return issuedAt.UTC().AddDate(0, months, 0)
}
