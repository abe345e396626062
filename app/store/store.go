package store

import (
	"sync"

	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/utils/calc"
	"go.uber.org/zap"
)

// Listener observes every state change. It receives a private copy.
type Listener func(state models.AppState, action Action)

// PromoCheck reports whether promo still holds for cart. It runs after every
// cart change; a promo that no longer holds is removed.
type PromoCheck func(promo models.PromoCode, cart models.CartState) bool

type Option func(*Store)

func WithPromoCheck(check PromoCheck) Option {
	return func(s *Store) {
		s.promoCheck = check
	}
}

type Store struct {
	mu         sync.Mutex
	state      models.AppState
	calculator *calc.Calculator
	promoCheck PromoCheck
	logger     *zap.Logger

	listenerMu sync.Mutex
	listeners  map[int]Listener
	nextID     int
}

func New(calculator *calc.Calculator, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		calculator: calculator,
		logger:     logger,
		listeners:  make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Cart.Summary = models.ZeroSummary()
	return s
}

// Dispatch applies a and reports whether the state changed. Listeners run
// after the store lock is released.
func (s *Store) Dispatch(a Action) bool {
	s.mu.Lock()
	next, changed := reduce(s.state, a, s.calculator, s.promoCheck)
	s.state = next
	var snapshot models.AppState
	if changed {
		snapshot = s.state.Clone()
	}
	s.mu.Unlock()

	s.logger.Debug("action dispatched", zap.String("action", a.Type()), zap.Bool("changed", changed))

	if changed {
		s.notify(snapshot, a)
	}
	return changed
}

func (s *Store) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) Cart() models.CartState {
	return s.State().Cart
}

func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.listenerMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.listenerMu.Unlock()

	return func() {
		s.listenerMu.Lock()
		delete(s.listeners, id)
		s.listenerMu.Unlock()
	}
}

func (s *Store) notify(state models.AppState, a Action) {
	s.listenerMu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.listenerMu.Unlock()

	for _, l := range ls {
		l(state.Clone(), a)
	}
}
