package models

import "time"

// Payment status values. "pending" is the initial state; the webhook
// reconciler moves a record into one of the others and never deletes it.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusExpired   = "expired"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
	PaymentStatusCancelled = "cancelled"
)

// Payment gateway identifiers used across payment-related models.
const (
	PaymentGatewayMisticPay  = "misticpay"
	PaymentGatewayAsaas      = "asaas"
	PaymentGatewayAbacatePay = "abacatepay"
)

// Payment represents one checkout attempt. At most one of the external
// gateway id columns is populated, depending on which gateway processed
// the charge.
type Payment struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	PaymentCode         string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"payment_code"`
	ProductCode         string     `gorm:"type:varchar(100);not null;index" json:"product_code"`
	AmountCents         int64      `gorm:"not null" json:"amount_cents"`
	Currency            string     `gorm:"type:varchar(3);not null;default:'BRL'" json:"currency"`
	CustomerName        string     `gorm:"type:varchar(200);not null" json:"customer_name"`
	CustomerEmail       string     `gorm:"type:varchar(200);not null;index" json:"customer_email"`
	CustomerTaxID       string     `gorm:"type:varchar(20);default:''" json:"customer_tax_id"`
	AffiliateCode       string     `gorm:"type:varchar(64);default:'';index" json:"affiliate_code"`
	MisticTransactionID *string    `gorm:"type:varchar(191);uniqueIndex" json:"mistic_transaction_id,omitempty"`
	AsaasPaymentID      *string    `gorm:"type:varchar(191);uniqueIndex" json:"asaas_payment_id,omitempty"`
	AbacateBillingID    *string    `gorm:"type:varchar(191);uniqueIndex" json:"abacate_billing_id,omitempty"`
	Status              string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PixQRCode           string     `gorm:"type:text" json:"pix_qr_code,omitempty"`
	PixCopyPaste        string     `gorm:"type:text" json:"pix_copy_paste,omitempty"`
	PaidAt              *time.Time `gorm:"type:timestamp;default:null" json:"paid_at,omitempty"`
	CreatedAt           time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsValidPaymentStatus reports whether s is one of the known status values.
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusExpired,
		PaymentStatusFailed, PaymentStatusRefunded, PaymentStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminalPaymentStatus reports whether s marks the end of a checkout
// lifecycle as far as the webhook reconciler is concerned.
func IsTerminalPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusExpired, PaymentStatusFailed,
		PaymentStatusRefunded, PaymentStatusCancelled:
		return true
	default:
		return false
	}
}
