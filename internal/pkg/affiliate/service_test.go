package affiliate

import (
	"context"
	"testing"

	"github.com/genesishub/checkout/app/models"
	"gorm.io/gorm"
)

type fakeAffiliateRepo struct {
	affiliates  map[string]*models.Affiliate
	commissions []*models.Commission
	existing    map[uint]bool
}

func newFakeAffiliateRepo() *fakeAffiliateRepo {
	return &fakeAffiliateRepo{
		affiliates: make(map[string]*models.Affiliate),
		existing:   make(map[uint]bool),
	}
}

func (f *fakeAffiliateRepo) GetByRefCode(refCode string) (*models.Affiliate, error) {
	aff, ok := f.affiliates[refCode]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return aff, nil
}

func (f *fakeAffiliateRepo) CreateCommissionIfNotExists(c *models.Commission) (bool, error) {
	if f.existing[c.PaymentID] {
		return false, nil
	}
	f.existing[c.PaymentID] = true
	f.commissions = append(f.commissions, c)
	return true, nil
}

func (f *fakeAffiliateRepo) ListCommissionsByAffiliate(affiliateID uint) ([]models.Commission, error) {
	var out []models.Commission
	for _, c := range f.commissions {
		if c.AffiliateID == affiliateID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func TestCreditForPayment(t *testing.T) {
	repo := newFakeAffiliateRepo()
	repo.affiliates["ref42"] = &models.Affiliate{ID: 5, RefCode: "ref42", CommissionPercent: 30, IsActive: true}
	svc := NewService(repo)

	payment := &models.Payment{ID: 11, AmountCents: 9900, AffiliateCode: "ref42"}
	if err := svc.CreditForPayment(context.Background(), payment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.commissions) != 1 {
		t.Fatalf("expected one commission, got %d", len(repo.commissions))
	}
	c := repo.commissions[0]
	if c.AffiliateID != 5 || c.PaymentID != 11 || c.AmountCents != 2970 || c.Status != models.CommissionStatusPending {
		t.Fatalf("unexpected commission: %+v", c)
	}

	// Second credit attempt for the same payment is a no-op.
	if err := svc.CreditForPayment(context.Background(), payment); err != nil {
		t.Fatalf("duplicate credit must not fail: %v", err)
	}
	if len(repo.commissions) != 1 {
		t.Fatalf("expected duplicate credit to be skipped, got %d rows", len(repo.commissions))
	}
}

func TestCreditForPaymentSkips(t *testing.T) {
	repo := newFakeAffiliateRepo()
	repo.affiliates["inactive"] = &models.Affiliate{ID: 6, RefCode: "inactive", CommissionPercent: 10, IsActive: false}
	svc := NewService(repo)

	cases := []*models.Payment{
		{ID: 1, AmountCents: 1000},                               // no ref code
		{ID: 2, AmountCents: 1000, AffiliateCode: "missing"},     // unknown code
		{ID: 3, AmountCents: 1000, AffiliateCode: "inactive"},    // inactive affiliate
		{ID: 4, AmountCents: 0, AffiliateCode: "inactive"},       // zero amount
	}
	for _, p := range cases {
		if err := svc.CreditForPayment(context.Background(), p); err != nil {
			t.Fatalf("payment %d: unexpected error: %v", p.ID, err)
		}
	}
	if len(repo.commissions) != 0 {
		t.Fatalf("expected no commissions, got %d", len(repo.commissions))
	}
}

func TestCommissionAmount(t *testing.T) {
	tests := []struct {
		amount  int64
		percent float64
		want    int64
	}{
		{amount: 10000, percent: 30, want: 3000},
		{amount: 9990, percent: 33.3, want: 3327},
		{amount: 1, percent: 30, want: 0},
		{amount: 0, percent: 30, want: 0},
		{amount: 10000, percent: 0, want: 0},
	}
	for _, tt := range tests {
		if got := commissionAmount(tt.amount, tt.percent); got != tt.want {
			t.Fatalf("commissionAmount(%d, %v) = %d, want %d", tt.amount, tt.percent, got, tt.want)
		}
	}
}
