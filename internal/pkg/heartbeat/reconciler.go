package heartbeat

import (
	"sync"
	"time"

	"github.com/genesishub/checkout/app/repository"
	"github.com/gofiber/fiber/v2/log"
)

const (
	// DefaultInterval is how often the reconciler sweeps for stale instances.
	DefaultInterval = 60 * time.Second
	// DefaultStaleAfter is how old a heartbeat may be before the instance is
	// considered disconnected.
	DefaultStaleAfter = 3 * time.Minute
)

// Reconciler periodically marks WhatsApp instances with stale heartbeats as
// disconnected. It is the only background task in the service; everything
// else is request-scoped.
type Reconciler struct {
	repo       repository.InstanceRepository
	interval   time.Duration
	staleAfter time.Duration

	mu      sync.Mutex
	ticker  *time.Ticker
	stopCh  chan struct{}
	running bool
}

// NewReconciler creates a reconciler. Zero durations fall back to defaults.
func NewReconciler(repo repository.InstanceRepository, interval, staleAfter time.Duration) *Reconciler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &Reconciler{
		repo:       repo,
		interval:   interval,
		staleAfter: staleAfter,
	}
}

// Start launches the background sweep loop. Calling Start on a running
// reconciler is a no-op.
func (r *Reconciler) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	// Recreate the stop channel for each start cycle so the reconciler can
	// be restarted safely.
	r.stopCh = make(chan struct{})
	r.ticker = time.NewTicker(r.interval)
	r.running = true
	go r.worker(r.ticker, r.stopCh)
	log.Info("[Heartbeat] Reconciler started")
}

// Stop halts the sweep loop.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.ticker.Stop()
	close(r.stopCh)
	r.running = false
	log.Info("[Heartbeat] Reconciler stopped")
}

func (r *Reconciler) worker(ticker *time.Ticker, stopCh chan struct{}) {
	for {
		select {
		case <-stopCh:
			log.Info("[Heartbeat] Sweep worker stopping")
			return
		case <-ticker.C:
			if n, err := r.Sweep(time.Now()); err != nil {
				log.Errorf("[Heartbeat] Sweep failed: %v", err)
			} else if n > 0 {
				log.Infof("[Heartbeat] Marked %d stale instance(s) disconnected", n)
			}
		}
	}
}

// Sweep runs one reconciliation pass at the given time and returns how many
// instances were flipped to disconnected.
func (r *Reconciler) Sweep(now time.Time) (int64, error) {
	return r.repo.MarkStaleDisconnected(now.Add(-r.staleAfter))
}
