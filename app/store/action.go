package store

import (
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidAction = errors.New("invalid action")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Action is a state transition. The set of variants is closed: only types
// in this package implement it.
type Action interface {
	Type() string
	action()
}

type (
	AddItem struct {
		Item models.CartItem
	}
	UpdateQuantity struct {
		Key      models.ItemKey
		Quantity int
	}
	UpdateVariant struct {
		Key     models.ItemKey
		Variant models.Variant
	}
	RemoveItem struct {
		Key models.ItemKey
	}
	SaveForLater struct {
		Key models.ItemKey
	}
	MoveToCart struct {
		Key models.ItemKey
	}
	ClearCart   struct{}
	ApplyPromo  struct {
		Promo models.PromoCode
	}
	RemovePromo struct{}
)

// CheckoutCompleted takes the ordered units, and the promo used for the
// order, out of the cart. Lines added while the order was placed stay.
type CheckoutCompleted struct {
	Items     []models.CartItem
	PromoCode string
}

type (
	ProductsRequested struct{}
	ProductsLoaded    struct {
		Products []models.Product
	}
	ProductLoaded struct {
		Product models.Product
	}
	ProductCreated struct {
		Product models.Product
	}
	ProductsFailed struct {
		Err string
	}
)

type (
	CategoriesRequested struct{}
	CategoriesLoaded    struct {
		Categories []models.Category
	}
	CategoriesFailed struct {
		Err string
	}
)

type (
	LoginRequested struct{}
	LoginSucceeded struct {
		User  models.User
		Token string
	}
	LoginFailed struct {
		Err string
	}
	LoggedOut struct{}
)

type (
	Notify struct {
		Level   string
		Message string
	}
	DismissNotification struct{}
)

func (AddItem) Type() string             { return "cart/addItem" }
func (UpdateQuantity) Type() string      { return "cart/updateQuantity" }
func (UpdateVariant) Type() string       { return "cart/updateVariant" }
func (RemoveItem) Type() string          { return "cart/removeItem" }
func (SaveForLater) Type() string        { return "cart/saveForLater" }
func (MoveToCart) Type() string          { return "cart/moveToCart" }
func (ClearCart) Type() string           { return "cart/clear" }
func (CheckoutCompleted) Type() string   { return "cart/checkoutCompleted" }
func (ApplyPromo) Type() string          { return "cart/applyPromo" }
func (RemovePromo) Type() string         { return "cart/removePromo" }
func (ProductsRequested) Type() string   { return "products/requested" }
func (ProductsLoaded) Type() string      { return "products/loaded" }
func (ProductLoaded) Type() string       { return "products/loadedOne" }
func (ProductCreated) Type() string      { return "products/created" }
func (ProductsFailed) Type() string      { return "products/failed" }
func (CategoriesRequested) Type() string { return "categories/requested" }
func (CategoriesLoaded) Type() string    { return "categories/loaded" }
func (CategoriesFailed) Type() string    { return "categories/failed" }
func (LoginRequested) Type() string      { return "auth/loginRequested" }
func (LoginSucceeded) Type() string      { return "auth/loginSucceeded" }
func (LoginFailed) Type() string         { return "auth/loginFailed" }
func (LoggedOut) Type() string           { return "auth/loggedOut" }
func (Notify) Type() string              { return "ui/notify" }
func (DismissNotification) Type() string { return "ui/dismissNotification" }

func (AddItem) action()             {}
func (UpdateQuantity) action()      {}
func (UpdateVariant) action()       {}
func (RemoveItem) action()          {}
func (SaveForLater) action()        {}
func (MoveToCart) action()          {}
func (ClearCart) action()           {}
func (CheckoutCompleted) action()   {}
func (ApplyPromo) action()          {}
func (RemovePromo) action()         {}
func (ProductsRequested) action()   {}
func (ProductsLoaded) action()      {}
func (ProductLoaded) action()       {}
func (ProductCreated) action()      {}
func (ProductsFailed) action()      {}
func (CategoriesRequested) action() {}
func (CategoriesLoaded) action()    {}
func (CategoriesFailed) action()    {}
func (LoginRequested) action()      {}
func (LoginSucceeded) action()      {}
func (LoginFailed) action()         {}
func (LoggedOut) action()           {}
func (Notify) action()              {}
func (DismissNotification) action() {}

func NewAddItem(item models.CartItem) (AddItem, error) {
	if err := validate.Struct(item); err != nil {
		return AddItem{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	if item.Price.IsNegative() {
		return AddItem{}, fmt.Errorf("%w: price must not be negative", ErrInvalidAction)
	}
	return AddItem{Item: item}, nil
}

// NewUpdateQuantity checks only the shape of the request. A quantity outside
// 1..MaxStock is still a valid action; the reducer ignores it.
func NewUpdateQuantity(key models.ItemKey, qty int) (UpdateQuantity, error) {
	if err := validate.Struct(key); err != nil {
		return UpdateQuantity{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	return UpdateQuantity{Key: key, Quantity: qty}, nil
}

func NewUpdateVariant(key models.ItemKey, variant models.Variant) (UpdateVariant, error) {
	if err := validate.Struct(key); err != nil {
		return UpdateVariant{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	return UpdateVariant{Key: key, Variant: variant}, nil
}

func NewApplyPromo(promo models.PromoCode) (ApplyPromo, error) {
	if promo.Code == "" {
		return ApplyPromo{}, fmt.Errorf("%w: promo code is empty", ErrInvalidAction)
	}
	if !promo.Kind.Valid() {
		return ApplyPromo{}, fmt.Errorf("%w: unknown promo kind %q", ErrInvalidAction, promo.Kind)
	}
	if promo.Value.IsNegative() {
		return ApplyPromo{}, fmt.Errorf("%w: promo value must not be negative", ErrInvalidAction)
	}
	return ApplyPromo{Promo: promo}, nil
}

func NewNotify(level, message string) (Notify, error) {
	switch level {
	case models.NotifyInfo, models.NotifySuccess, models.NotifyError:
	default:
		return Notify{}, fmt.Errorf("%w: unknown notification level %q", ErrInvalidAction, level)
	}
	return Notify{Level: level, Message: message}, nil
}
