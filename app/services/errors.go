package services

import "errors"

var (
	ErrEmptyPromoInput      = errors.New("please enter a promo code")
	ErrInvalidPromoCode     = errors.New("invalid promo code")
	ErrPromoConditionNotMet = errors.New("promo code requirements not met")
	ErrPromoFailed          = errors.New("failed to apply promo code")

	ErrQuantityOutOfRange = errors.New("quantity out of range")
	ErrItemNotFound       = errors.New("item not in cart")
	ErrProductNotFound    = errors.New("product not found")
	ErrVariantUnavailable = errors.New("variant not available for product")
	ErrInsufficientStock  = errors.New("not enough stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidProduct     = errors.New("invalid product")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// User-facing promo messages.
const (
	MsgPromoApplied         = "Promo code applied"
	MsgEmptyPromoInput      = "Please enter a promo code"
	MsgInvalidPromoCode     = "Invalid promo code"
	MsgPromoConditionNotMet = "Promo code requirements not met"
	MsgPromoFailed          = "Failed to apply promo code"
)

// PromoMessage maps a promo resolution error onto the text shown to the user.
func PromoMessage(err error) string {
	switch {
	case err == nil:
		return MsgPromoApplied
	case errors.Is(err, ErrEmptyPromoInput):
		return MsgEmptyPromoInput
	case errors.Is(err, ErrInvalidPromoCode):
		return MsgInvalidPromoCode
	case errors.Is(err, ErrPromoConditionNotMet):
		return MsgPromoConditionNotMet
	default:
		return MsgPromoFailed
	}
}
