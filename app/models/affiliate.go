package models

import "time"

// Commission status values.
const (
	CommissionStatusPending  = "pending"
	CommissionStatusApproved = "approved"
	CommissionStatusPaidOut  = "paid_out"
)

// Affiliate is a partner who refers customers via a ref code embedded in
// checkout links.
type Affiliate struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"type:varchar(200);not null" json:"name"`
	Email             string    `gorm:"type:varchar(200);not null;uniqueIndex" json:"email"`
	RefCode           string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"ref_code"`
	CommissionPercent float64   `gorm:"not null;default:0" json:"commission_percent"`
	IsActive          bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Commission records the amount owed to an affiliate for one paid checkout.
// The unique index on payment_id keeps crediting idempotent when the same
// paid webhook is delivered more than once.
type Commission struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AffiliateID uint      `gorm:"not null;index" json:"affiliate_id"`
	PaymentID   uint      `gorm:"not null;uniqueIndex" json:"payment_id"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
