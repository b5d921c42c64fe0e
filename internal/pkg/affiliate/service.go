package affiliate

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"

	"github.com/genesishub/checkout/app/models"
	"github.com/genesishub/checkout/app/repository"
	"gorm.io/gorm"
)

// Service credits affiliate commissions for paid checkouts.
type Service struct {
	repo repository.AffiliateRepository
}

// NewService creates an affiliate service from an injected repository.
func NewService(repo repository.AffiliateRepository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates an affiliate service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(repository.NewAffiliateRepository(db))
}

// CreditForPayment inserts a commission row for the affiliate referenced by
// the payment, if any. The unique payment_id constraint keeps repeated paid
// deliveries from crediting twice. Unknown or inactive ref codes are skipped
// silently; a checkout link with a dead ref code is not an error.
func (s *Service) CreditForPayment(ctx context.Context, payment *models.Payment) error {
	_ = ctx
	refCode := strings.TrimSpace(payment.AffiliateCode)
	if refCode == "" {
		return nil
	}

	aff, err := s.repo.GetByRefCode(refCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("affiliate: payment %d carries unknown ref code %q", payment.ID, refCode)
			return nil
		}
		return err
	}
	if !aff.IsActive {
		return nil
	}

	amount := commissionAmount(payment.AmountCents, aff.CommissionPercent)
	if amount <= 0 {
		return nil
	}

	created, err := s.repo.CreateCommissionIfNotExists(&models.Commission{
		AffiliateID: aff.ID,
		PaymentID:   payment.ID,
		AmountCents: amount,
		Status:      models.CommissionStatusPending,
	})
	if err != nil {
		return err
	}
	if !created {
		log.Printf("affiliate: commission for payment %d already exists, skipping", payment.ID)
	}
	return nil
}

func commissionAmount(amountCents int64, percent float64) int64 {
	if amountCents <= 0 || percent <= 0 {
		return 0
	}
	return int64(math.Round(float64(amountCents) * percent / 100))
}
