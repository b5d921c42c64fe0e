package repository

import (
	"github.com/genesishub/checkout/app/models"
	"gorm.io/gorm"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByPaymentCode(code string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("payment_code = ?", code).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) List(offset, limit int, status string) ([]models.Payment, error) {
	var payments []models.Payment
	query := r.db.Order("created_at DESC").Offset(offset).Limit(limit)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) Count(status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.Payment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *paymentRepository) CountByStatus() (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.Model(&models.Payment{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

func (r *paymentRepository) GetEvents(paymentID uint) ([]models.PaymentEvent, error) {
	var events []models.PaymentEvent
	err := r.db.Where("payment_id = ?", paymentID).Order("created_at ASC").Find(&events).Error
	return events, err
}
