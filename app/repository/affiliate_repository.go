package repository

import (
	"github.com/genesishub/checkout/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// affiliateRepository implements the AffiliateRepository interface
type affiliateRepository struct {
	db *gorm.DB
}

// NewAffiliateRepository creates a new affiliate repository instance
func NewAffiliateRepository(db *gorm.DB) AffiliateRepository {
	return &affiliateRepository{db: db}
}

func (r *affiliateRepository) GetByRefCode(refCode string) (*models.Affiliate, error) {
	var affiliate models.Affiliate
	if err := r.db.Where("ref_code = ?", refCode).First(&affiliate).Error; err != nil {
		return nil, err
	}
	return &affiliate, nil
}

// CreateCommissionIfNotExists inserts a commission row unless one already
// exists for the same payment. Returns whether a new row was created.
func (r *affiliateRepository) CreateCommissionIfNotExists(commission *models.Commission) (bool, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "payment_id"}},
		DoNothing: true,
	}).Create(commission)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *affiliateRepository) ListCommissionsByAffiliate(affiliateID uint) ([]models.Commission, error) {
	var commissions []models.Commission
	err := r.db.Where("affiliate_id = ?", affiliateID).Order("created_at DESC").Find(&commissions).Error
	return commissions, err
}
