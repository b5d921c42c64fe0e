package repository

import (
	"time"

	"github.com/genesishub/checkout/app/models"
)

// PaymentRepository defines payment queries used outside the webhook
// reconciliation core (checkout creation, status polling, admin views).
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByPaymentCode(code string) (*models.Payment, error)
	List(offset, limit int, status string) ([]models.Payment, error)
	Count(status string) (int64, error)
	CountByStatus() (map[string]int64, error)
	GetEvents(paymentID uint) ([]models.PaymentEvent, error)
}

// AffiliateRepository defines affiliate and commission operations.
type AffiliateRepository interface {
	GetByRefCode(refCode string) (*models.Affiliate, error)
	CreateCommissionIfNotExists(commission *models.Commission) (bool, error)
	ListCommissionsByAffiliate(affiliateID uint) ([]models.Commission, error)
}

// InstanceRepository defines WhatsApp instance heartbeat operations.
type InstanceRepository interface {
	UpsertHeartbeat(instanceKey, tenantSlug string, at time.Time) (*models.WhatsAppInstance, error)
	MarkStaleDisconnected(staleBefore time.Time) (int64, error)
	GetByInstanceKey(instanceKey string) (*models.WhatsAppInstance, error)
}

// SettingRepository defines the interface for application settings
type SettingRepository interface {
	Get() (*models.AppSettings, error)
	Save(settings *models.AppSettings) error
	GetValue(key string) (string, error)
	SetValue(key, value string) error
}

// Repositories holds all repository instances
type Repositories struct {
	Payment   PaymentRepository
	Affiliate AffiliateRepository
	Instance  InstanceRepository
	Setting   SettingRepository
}
