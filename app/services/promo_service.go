package services

import (
	"fmt"

	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/utils/calc"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PromoEnv is what a promo condition can see.
type PromoEnv struct {
	Subtotal  float64
	ItemCount int
	Quantity  int
}

func DefaultPromoCodes() []models.PromoCode {
	return []models.PromoCode{
		{Code: "SAVE10", Kind: models.PromoPercentage, Value: decimal.NewFromInt(10)},
		{Code: "WELCOME20", Kind: models.PromoFixed, Value: decimal.NewFromInt(20)},
		{Code: "FREESHIP", Kind: models.PromoFreeShipping, Value: decimal.Zero},
		{Code: "SAVE25", Kind: models.PromoPercentage, Value: decimal.NewFromInt(25), Condition: "Subtotal >= 100"},
	}
}

type PromoService struct {
	codes      map[string]models.PromoCode
	conditions map[string]*vm.Program
	logger     *zap.Logger
}

// NewPromoService indexes codes by their normalized form and compiles every
// condition up front so a bad table fails at startup.
func NewPromoService(codes []models.PromoCode, logger *zap.Logger) (*PromoService, error) {
	s := &PromoService{
		codes:      make(map[string]models.PromoCode, len(codes)),
		conditions: make(map[string]*vm.Program),
		logger:     logger,
	}
	for _, c := range codes {
		c.Code = models.NormalizePromoCode(c.Code)
		if c.Code == "" || !c.Kind.Valid() {
			return nil, fmt.Errorf("promo %q: invalid definition", c.Code)
		}
		if c.Condition != "" {
			program, err := expr.Compile(c.Condition, expr.Env(PromoEnv{}), expr.AsBool())
			if err != nil {
				return nil, fmt.Errorf("promo %q: compile condition: %w", c.Code, err)
			}
			s.conditions[c.Code] = program
		}
		s.codes[c.Code] = c
	}
	return s, nil
}

// Resolve looks up input against the table and checks its condition against
// the cart.
func (s *PromoService) Resolve(input string, cart models.CartState) (*models.PromoCode, error) {
	code := models.NormalizePromoCode(input)
	if code == "" {
		return nil, ErrEmptyPromoInput
	}
	promo, ok := s.codes[code]
	if !ok {
		s.logger.Debug("unknown promo code", zap.String("code", code))
		return nil, ErrInvalidPromoCode
	}

	met, err := s.conditionMet(code, cart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPromoFailed, err)
	}
	if !met {
		return nil, ErrPromoConditionNotMet
	}
	return &promo, nil
}

// Eligible re-checks the condition of an active promo against cart. A
// condition that fails to evaluate counts as not met.
func (s *PromoService) Eligible(promo models.PromoCode, cart models.CartState) bool {
	met, err := s.conditionMet(models.NormalizePromoCode(promo.Code), cart)
	return err == nil && met
}

func (s *PromoService) conditionMet(code string, cart models.CartState) (bool, error) {
	program, ok := s.conditions[code]
	if !ok {
		return true, nil
	}
	env := PromoEnv{
		Subtotal:  calc.Subtotal(cart.Items).InexactFloat64(),
		ItemCount: len(cart.Items),
	}
	for _, it := range cart.Items {
		env.Quantity += it.Quantity
	}
	out, err := expr.Run(program, env)
	if err != nil {
		s.logger.Error("promo condition failed", zap.String("code", code), zap.Error(err))
		return false, err
	}
	met, _ := out.(bool)
	return met, nil
}
