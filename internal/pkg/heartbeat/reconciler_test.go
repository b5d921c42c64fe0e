package heartbeat

import (
	"testing"
	"time"

	"github.com/genesishub/checkout/app/models"
	"gorm.io/gorm"
)

type fakeInstanceRepo struct {
	staleBefore []time.Time
	flipped     int64
}

func (f *fakeInstanceRepo) UpsertHeartbeat(instanceKey, tenantSlug string, at time.Time) (*models.WhatsAppInstance, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeInstanceRepo) MarkStaleDisconnected(staleBefore time.Time) (int64, error) {
	f.staleBefore = append(f.staleBefore, staleBefore)
	return f.flipped, nil
}

func (f *fakeInstanceRepo) GetByInstanceKey(instanceKey string) (*models.WhatsAppInstance, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestSweepUsesStaleThreshold(t *testing.T) {
	repo := &fakeInstanceRepo{flipped: 2}
	r := NewReconciler(repo, time.Minute, 3*time.Minute)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n, err := r.Sweep(now)
	if err != nil {
		t.Fatalf("unexpected sweep error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 flipped instances, got %d", n)
	}
	if len(repo.staleBefore) != 1 || !repo.staleBefore[0].Equal(now.Add(-3*time.Minute)) {
		t.Fatalf("unexpected stale threshold: %v", repo.staleBefore)
	}
}

func TestReconcilerDefaults(t *testing.T) {
	r := NewReconciler(&fakeInstanceRepo{}, 0, 0)
	if r.interval != DefaultInterval || r.staleAfter != DefaultStaleAfter {
		t.Fatalf("expected defaults, got interval=%v staleAfter=%v", r.interval, r.staleAfter)
	}
}

func TestStartStopIdempotent(t *testing.T) {
	r := NewReconciler(&fakeInstanceRepo{}, time.Hour, time.Hour)
	r.Start()
	r.Start()
	r.Stop()
	r.Stop()
}
