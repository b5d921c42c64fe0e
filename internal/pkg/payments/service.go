package payments

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/genesishub/checkout/app/models"
	"gorm.io/gorm"
)

// Service reconciles inbound webhook deliveries against local payment records.
type Service struct {
	repo Repository
}

// NewService creates a reconciliation service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a reconciliation service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// Reconcile locates the payment referenced by a classified webhook, applies
// the mapped status if it differs from the stored one, and appends an audit
// event. Deliveries for unknown payments and payloads without a usable
// external id are reported as non-error outcomes so the sender does not
// retry them.
//
// The status write is last-write-wins: there is no ordering guard, so a
// stale "expired" delivery arriving after "paid" overwrites it. Duplicate
// deliveries are safe because equal statuses are skipped.
func (s *Service) Reconcile(ctx context.Context, in *InboundWebhook) (*ReconcileResult, error) {
	_ = ctx
	externalID := strings.TrimSpace(in.ExternalID)
	if externalID == "" {
		return &ReconcileResult{Outcome: OutcomeUnmatched}, nil
	}

	payment, err := s.repo.FindByGatewayID(in.Gateway, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ReconcileResult{Outcome: OutcomeNotFound}, nil
		}
		return nil, err
	}

	mapped, eventType, hasTransition := MapSignal(in.Gateway, in.Signal)
	result := &ReconcileResult{
		Outcome:   OutcomeNoChange,
		Payment:   payment,
		Status:    payment.Status,
		EventType: eventType,
	}

	if hasTransition && mapped != payment.Status {
		var paidAt *time.Time
		if mapped == models.PaymentStatusPaid && payment.PaidAt == nil {
			now := time.Now()
			paidAt = &now
		}
		if err := s.repo.UpdateStatus(payment.ID, mapped, paidAt); err != nil {
			return nil, err
		}
		payment.Status = mapped
		if paidAt != nil {
			payment.PaidAt = paidAt
		}
		result.Outcome = OutcomeUpdated
		result.Status = mapped
	}

	// One audit row per delivery, change or not. A failed audit write must
	// not mask an already-applied status update, so it is logged and dropped.
	event := &models.PaymentEvent{
		PaymentID: payment.ID,
		EventType: eventType,
		EventData: in.RawJSON,
		Source:    models.PaymentEventSourceWebhook,
	}
	if err := s.repo.CreateEvent(event); err != nil {
		log.Printf("payments: audit event insert failed for payment %d: %v", payment.ID, err)
	}

	return result, nil
}
