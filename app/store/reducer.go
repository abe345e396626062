package store

import (
	"fmt"

	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/utils/calc"
)

// MsgPromoRemoved is posted when a cart change makes the active promo's
// condition false.
const MsgPromoRemoved = "Promo code %s removed: requirements no longer met"

// reduce applies a to state and reports whether anything changed. state is
// owned by the caller and may be modified.
func reduce(state models.AppState, a Action, calculator *calc.Calculator, check PromoCheck) (models.AppState, bool) {
	var changed bool

	switch a.(type) {
	case AddItem, UpdateQuantity, UpdateVariant, RemoveItem, SaveForLater, MoveToCart, ClearCart, CheckoutCompleted, ApplyPromo, RemovePromo:
		state.Cart, changed = reduceCart(state.Cart, a)
		if changed {
			state.Cart.Summary = calculator.Summarize(state.Cart.Items, state.Cart.Promo)
			if p := state.Cart.Promo; p != nil && check != nil && !check(*p, state.Cart) {
				state.Cart.Promo = nil
				state.Cart.Summary = calculator.Summarize(state.Cart.Items, nil)
				state.UI.Notification = fmt.Sprintf(MsgPromoRemoved, p.Code)
				state.UI.NotificationLevel = models.NotifyInfo
			}
		}
	case ProductsRequested, ProductsLoaded, ProductLoaded, ProductCreated, ProductsFailed:
		state.Products, changed = reduceProducts(state.Products, a), true
	case CategoriesRequested, CategoriesLoaded, CategoriesFailed:
		state.Categories, changed = reduceCategories(state.Categories, a), true
	case LoginRequested, LoginSucceeded, LoginFailed, LoggedOut:
		state.Auth, changed = reduceAuth(state.Auth, a), true
	case Notify, DismissNotification:
		state.UI, changed = reduceUI(state.UI, a), true
	}

	state.UI.Loading = state.Products.Loading || state.Categories.Loading || state.Auth.Loading
	return state, changed
}

func indexOf(items []models.CartItem, key models.ItemKey) int {
	for i := range items {
		if items[i].Key() == key {
			return i
		}
	}
	return -1
}

func removeAt(items []models.CartItem, i int) []models.CartItem {
	return append(items[:i], items[i+1:]...)
}

// unitsOf counts the units of product id across items, leaving out the line
// keyed skip.
func unitsOf(items []models.CartItem, id string, skip models.ItemKey) int {
	n := 0
	for _, it := range items {
		if it.ID == id && it.Key() != skip {
			n += it.Quantity
		}
	}
	return n
}

// mergeInto adds item to items, summing quantities for an existing line.
// Every variant of a product draws on the same stock, so the line is capped
// at what the other lines of the product leave free. It reports false when
// nothing changed.
func mergeInto(items []models.CartItem, item models.CartItem) ([]models.CartItem, bool) {
	free := item.MaxStock - unitsOf(items, item.ID, item.Key())
	i := indexOf(items, item.Key())
	qty := item.Quantity
	if i >= 0 {
		qty += items[i].Quantity
	}
	qty = min(qty, free)
	if qty < 1 || (i >= 0 && qty == items[i].Quantity) {
		return items, false
	}
	item.Quantity = qty
	if i < 0 {
		return append(items, item), true
	}
	items[i] = item
	return items, true
}

func reduceCart(cart models.CartState, a Action) (models.CartState, bool) {
	switch act := a.(type) {
	case AddItem:
		var changed bool
		cart.Items, changed = mergeInto(cart.Items, act.Item)
		return cart, changed

	case UpdateQuantity:
		i := indexOf(cart.Items, act.Key)
		if i < 0 {
			return cart, false
		}
		others := unitsOf(cart.Items, act.Key.ID, act.Key)
		if act.Quantity < 1 || act.Quantity+others > cart.Items[i].MaxStock || act.Quantity == cart.Items[i].Quantity {
			return cart, false
		}
		cart.Items[i].Quantity = act.Quantity
		return cart, true

	case UpdateVariant:
		i := indexOf(cart.Items, act.Key)
		if i < 0 {
			return cart, false
		}
		item := cart.Items[i]
		item.Variant = act.Variant
		if item.Key() == act.Key {
			return cart, false
		}
		if j := indexOf(cart.Items, item.Key()); j >= 0 {
			cart.Items = removeAt(cart.Items, i)
			item.MaxStock = cart.Items[indexOf(cart.Items, item.Key())].MaxStock
			cart.Items, _ = mergeInto(cart.Items, item)
			return cart, true
		}
		cart.Items[i] = item
		return cart, true

	case RemoveItem:
		i := indexOf(cart.Items, act.Key)
		if i < 0 {
			return cart, false
		}
		cart.Items = removeAt(cart.Items, i)
		return cart, true

	case SaveForLater:
		i := indexOf(cart.Items, act.Key)
		if i < 0 {
			return cart, false
		}
		item := cart.Items[i]
		cart.Items = removeAt(cart.Items, i)
		if j := indexOf(cart.SavedForLater, item.Key()); j >= 0 {
			cart.SavedForLater[j] = item
		} else {
			cart.SavedForLater = append(cart.SavedForLater, item)
		}
		return cart, true

	case MoveToCart:
		i := indexOf(cart.SavedForLater, act.Key)
		if i < 0 {
			return cart, false
		}
		items, ok := mergeInto(cart.Items, cart.SavedForLater[i])
		if !ok {
			return cart, false
		}
		cart.Items = items
		cart.SavedForLater = removeAt(cart.SavedForLater, i)
		return cart, true

	case ClearCart:
		if len(cart.Items) == 0 && cart.Promo == nil && cart.Summary.IsZero() {
			return cart, false
		}
		cart.Items = nil
		cart.Promo = nil
		return cart, true

	case CheckoutCompleted:
		changed := false
		for _, ordered := range act.Items {
			i := indexOf(cart.Items, ordered.Key())
			if i < 0 {
				continue
			}
			changed = true
			if left := cart.Items[i].Quantity - ordered.Quantity; left > 0 {
				cart.Items[i].Quantity = left
			} else {
				cart.Items = removeAt(cart.Items, i)
			}
		}
		if cart.Promo != nil && act.PromoCode != "" && cart.Promo.Code == act.PromoCode {
			cart.Promo = nil
			changed = true
		}
		return cart, changed

	case ApplyPromo:
		promo := act.Promo
		cart.Promo = &promo
		return cart, true

	case RemovePromo:
		if cart.Promo == nil {
			return cart, false
		}
		cart.Promo = nil
		return cart, true
	}
	return cart, false
}

func reduceProducts(products models.ProductsState, a Action) models.ProductsState {
	switch act := a.(type) {
	case ProductsRequested:
		products.Loading = true
		products.Error = ""
	case ProductsLoaded:
		products.Items = act.Products
		products.Loading = false
	case ProductLoaded:
		p := act.Product
		products.Selected = &p
		products.Loading = false
	case ProductCreated:
		products.Items = append(products.Items, act.Product)
		products.Loading = false
	case ProductsFailed:
		products.Loading = false
		products.Error = act.Err
	}
	return products
}

func reduceCategories(categories models.CategoriesState, a Action) models.CategoriesState {
	switch act := a.(type) {
	case CategoriesRequested:
		categories.Loading = true
		categories.Error = ""
	case CategoriesLoaded:
		categories.Items = act.Categories
		categories.Loading = false
	case CategoriesFailed:
		categories.Loading = false
		categories.Error = act.Err
	}
	return categories
}

func reduceAuth(auth models.AuthState, a Action) models.AuthState {
	switch act := a.(type) {
	case LoginRequested:
		auth.Loading = true
		auth.Error = ""
	case LoginSucceeded:
		u := act.User
		return models.AuthState{User: &u, Token: act.Token}
	case LoginFailed:
		return models.AuthState{Error: act.Err}
	case LoggedOut:
		return models.AuthState{}
	}
	return auth
}

func reduceUI(ui models.UIState, a Action) models.UIState {
	switch act := a.(type) {
	case Notify:
		ui.Notification = act.Message
		ui.NotificationLevel = act.Level
	case DismissNotification:
		ui.Notification = ""
		ui.NotificationLevel = ""
	}
	return ui
}
