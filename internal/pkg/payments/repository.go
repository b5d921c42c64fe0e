package payments

import (
	"fmt"
	"time"

	"github.com/genesishub/checkout/app/models"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the reconciliation service.
type Repository interface {
	FindByGatewayID(gateway Gateway, externalID string) (*models.Payment, error)
	UpdateStatus(paymentID uint, status string, paidAt *time.Time) error
	CreateEvent(event *models.PaymentEvent) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payments repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByGatewayID(gateway Gateway, externalID string) (*models.Payment, error) {
	var payment models.Payment

	switch gateway {
	case GatewayMisticPay:
		err := r.db.Where("mistic_transaction_id = ?", externalID).First(&payment).Error
		if err == nil {
			return &payment, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
		// Fallback: MisticPay sometimes echoes our human-facing payment code
		// instead of its own transaction id. The substring match is loose and
		// can false-positive on very short ids; kept as-is because the exact
		// column is tried first and tightening it changes observed behavior.
		err = r.db.Where("payment_code LIKE ?", "%"+externalID+"%").First(&payment).Error
		if err != nil {
			return nil, err
		}
		return &payment, nil

	case GatewayAsaas:
		err := r.db.Where("asaas_payment_id = ?", externalID).First(&payment).Error
		if err != nil {
			return nil, err
		}
		return &payment, nil

	case GatewayAbacatePay:
		err := r.db.Where("abacate_billing_id = ?", externalID).First(&payment).Error
		if err != nil {
			return nil, err
		}
		return &payment, nil
	}

	return nil, fmt.Errorf("unknown gateway %q", gateway)
}

func (r *gormRepository) UpdateStatus(paymentID uint, status string, paidAt *time.Time) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if paidAt != nil {
		updates["paid_at"] = paidAt
	}
	return r.db.Model(&models.Payment{}).Where("id = ?", paymentID).Updates(updates).Error
}

func (r *gormRepository) CreateEvent(event *models.PaymentEvent) error {
	return r.db.Create(event).Error
}
