package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/repositories"
	"github.com/Rakhulsr/go-cart/app/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CartService struct {
	productRepo repositories.ProductRepositoryImpl
	promoSvc    *PromoService
	logger      *zap.Logger
}

func NewCartService(productRepo repositories.ProductRepositoryImpl, promoSvc *PromoService, logger *zap.Logger) *CartService {
	return &CartService{
		productRepo: productRepo,
		promoSvc:    promoSvc,
		logger:      logger,
	}
}

func (s *CartService) getProduct(ctx context.Context, productID string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", productID, err)
	}
	return product, nil
}

func checkVariant(product *models.Product, variant models.Variant) error {
	if !product.HasSize(variant.Size) || !product.HasColor(variant.Color) {
		return fmt.Errorf("%w: %s %s/%s", ErrVariantUnavailable, product.Name, variant.Size, variant.Color)
	}
	return nil
}

// unitsInCart counts the units of a product across all of its variant lines.
func unitsInCart(items []models.CartItem, productID string, skip models.ItemKey) int {
	n := 0
	for _, it := range items {
		if it.ID == productID && it.Key() != skip {
			n += it.Quantity
		}
	}
	return n
}

// AddItemToCart adds qty of the product in the given variant. Adding an
// existing (product, size, color) line increases its quantity. All variants
// of a product draw on its single stock count.
func (s *CartService) AddItemToCart(ctx context.Context, st *store.Store, productID string, variant models.Variant, qty int) (models.CartState, error) {
	if qty < 1 {
		return st.Cart(), ErrQuantityOutOfRange
	}

	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return st.Cart(), err
	}
	if err := checkVariant(product, variant); err != nil {
		return st.Cart(), err
	}
	inCart := unitsInCart(st.Cart().Items, product.ID, models.ItemKey{})
	if inCart+qty > product.Stock {
		return st.Cart(), fmt.Errorf("%w for product %s (available: %d)", ErrInsufficientStock, product.Name, max(product.Stock-inCart, 0))
	}

	action, err := store.NewAddItem(product.ToCartItem(variant, qty))
	if err != nil {
		return st.Cart(), err
	}
	if !st.Dispatch(action) {
		return st.Cart(), fmt.Errorf("%w for product %s", ErrInsufficientStock, product.Name)
	}

	s.logger.Info("item added to cart",
		zap.String("product_id", productID),
		zap.String("size", variant.Size),
		zap.String("color", variant.Color),
		zap.Int("qty", qty))
	return st.Cart(), nil
}

func (s *CartService) findItem(st *store.Store, key models.ItemKey) (models.CartItem, bool) {
	for _, item := range st.Cart().Items {
		if item.Key() == key {
			return item, true
		}
	}
	return models.CartItem{}, false
}

// UpdateCartItemQty sets the quantity of a line. A quantity below 1, or one
// that takes the product's lines together above its stock, leaves the cart
// untouched and returns ErrQuantityOutOfRange so callers can tell it was
// ignored.
func (s *CartService) UpdateCartItemQty(st *store.Store, key models.ItemKey, qty int) (models.CartState, error) {
	item, ok := s.findItem(st, key)
	if !ok {
		return st.Cart(), ErrItemNotFound
	}
	if qty < 1 || qty+unitsInCart(st.Cart().Items, key.ID, key) > item.MaxStock {
		s.logger.Debug("quantity change ignored",
			zap.String("item", key.String()),
			zap.Int("requested", qty),
			zap.Int("max_stock", item.MaxStock))
		return st.Cart(), ErrQuantityOutOfRange
	}

	action, err := store.NewUpdateQuantity(key, qty)
	if err != nil {
		return st.Cart(), err
	}
	st.Dispatch(action)
	return st.Cart(), nil
}

func (s *CartService) UpdateCartItemVariant(ctx context.Context, st *store.Store, key models.ItemKey, variant models.Variant) (models.CartState, error) {
	if _, ok := s.findItem(st, key); !ok {
		return st.Cart(), ErrItemNotFound
	}
	product, err := s.getProduct(ctx, key.ID)
	if err != nil {
		return st.Cart(), err
	}
	if err := checkVariant(product, variant); err != nil {
		return st.Cart(), err
	}

	action, err := store.NewUpdateVariant(key, variant)
	if err != nil {
		return st.Cart(), err
	}
	st.Dispatch(action)
	return st.Cart(), nil
}

// RemoveItemFromCart is idempotent: removing a missing line is a no-op.
func (s *CartService) RemoveItemFromCart(st *store.Store, key models.ItemKey) models.CartState {
	if st.Dispatch(store.RemoveItem{Key: key}) {
		s.logger.Info("item removed from cart", zap.String("item", key.String()))
	}
	return st.Cart()
}

func (s *CartService) SaveForLater(st *store.Store, key models.ItemKey) (models.CartState, error) {
	if !st.Dispatch(store.SaveForLater{Key: key}) {
		return st.Cart(), ErrItemNotFound
	}
	return st.Cart(), nil
}

// MoveToCart brings a saved line back. It fails with ErrInsufficientStock
// when the product's other lines already use up its stock.
func (s *CartService) MoveToCart(st *store.Store, key models.ItemKey) (models.CartState, error) {
	if st.Dispatch(store.MoveToCart{Key: key}) {
		return st.Cart(), nil
	}
	for _, it := range st.Cart().SavedForLater {
		if it.Key() == key {
			return st.Cart(), fmt.Errorf("%w for product %s", ErrInsufficientStock, it.Name)
		}
	}
	return st.Cart(), ErrItemNotFound
}

func (s *CartService) ClearCart(st *store.Store) models.CartState {
	st.Dispatch(store.ClearCart{})
	return st.Cart()
}

// ApplyPromo resolves code and makes it the single active promo. Failures
// leave the active promo and discount as they were.
func (s *CartService) ApplyPromo(st *store.Store, code string) (result models.PromoResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("promo application panicked", zap.Any("panic", r))
			result = models.PromoResult{Success: false, Message: MsgPromoFailed, Discount: decimal.Zero}
		}
		s.notify(st, result)
	}()

	promo, err := s.promoSvc.Resolve(code, st.Cart())
	if err != nil {
		return models.PromoResult{Success: false, Message: PromoMessage(err), Discount: decimal.Zero}
	}

	action, err := store.NewApplyPromo(*promo)
	if err != nil {
		s.logger.Error("promo rejected by store", zap.String("code", promo.Code), zap.Error(err))
		return models.PromoResult{Success: false, Message: MsgPromoFailed, Discount: decimal.Zero}
	}
	st.Dispatch(action)

	cart := st.Cart()
	if cart.Promo == nil || cart.Promo.Code != promo.Code {
		// the cart changed between Resolve and Dispatch and no longer qualifies
		return models.PromoResult{Success: false, Message: MsgPromoConditionNotMet, Discount: decimal.Zero}
	}

	s.logger.Info("promo applied", zap.String("code", promo.Code), zap.String("kind", string(promo.Kind)))
	return models.PromoResult{
		Success:  true,
		Message:  MsgPromoApplied,
		Discount: cart.Summary.Discount,
	}
}

func (s *CartService) notify(st *store.Store, result models.PromoResult) {
	level := models.NotifySuccess
	if !result.Success {
		level = models.NotifyError
	}
	n, err := store.NewNotify(level, result.Message)
	if err != nil {
		return
	}
	st.Dispatch(n)
}

func (s *CartService) RemovePromo(st *store.Store) models.CartState {
	st.Dispatch(store.RemovePromo{})
	return st.Cart()
}

func (s *CartService) Summary(st *store.Store) models.OrderSummary {
	return st.Cart().Summary
}
