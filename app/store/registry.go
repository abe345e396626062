package store

import (
	"context"
	"sync"
	"time"

	"github.com/Rakhulsr/go-cart/app/utils/calc"
	"go.uber.org/zap"
)

type registryEntry struct {
	store    *Store
	lastSeen time.Time
}

// Registry keeps one Store per browser session. Stores not touched for a
// while are evicted by Sweep.
type Registry struct {
	mu         sync.Mutex
	stores     map[string]*registryEntry
	calculator *calc.Calculator
	opts       []Option
	logger     *zap.Logger
	now        func() time.Time
}

func NewRegistry(calculator *calc.Calculator, logger *zap.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		stores:     make(map[string]*registryEntry),
		calculator: calculator,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.stores[sessionID]; ok {
		e.lastSeen = r.now()
		return e.store
	}
	s := New(r.calculator, r.logger.With(zap.String("session_id", sessionID)), r.opts...)
	r.stores[sessionID] = &registryEntry{store: s, lastSeen: r.now()}
	r.logger.Debug("session store created", zap.String("session_id", sessionID))
	return s
}

func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	delete(r.stores, sessionID)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Sweep evicts the stores idle for longer than idle and returns how many
// went.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	evicted := 0
	for id, e := range r.stores {
		if e.lastSeen.Before(cutoff) {
			delete(r.stores, id)
			evicted++
		}
	}
	return evicted
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(idle); n > 0 {
				r.logger.Info("idle session stores evicted", zap.Int("evicted", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}
