package models

import "time"

// Payment event sources.
const (
	PaymentEventSourceWebhook = "webhook"
	PaymentEventSourceAdmin   = "admin"
)

// PaymentEvent is an append-only audit row capturing one delivery that
// touched a payment. One row is written per webhook delivery received,
// including duplicates and no-ops.
type PaymentEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PaymentID uint      `gorm:"not null;index" json:"payment_id"`
	EventType string    `gorm:"type:varchar(100);not null;index" json:"event_type"`
	EventData string    `gorm:"type:longtext;not null" json:"event_data"`
	Source    string    `gorm:"type:varchar(20);not null;default:'webhook';index" json:"source"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
