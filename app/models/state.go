package models

// AppState is the whole state tree for one storefront session.
type AppState struct {
	Cart       CartState       `json:"cart"`
	Auth       AuthState       `json:"auth"`
	Products   ProductsState   `json:"products"`
	Categories CategoriesState `json:"categories"`
	UI         UIState         `json:"ui"`
}

type CartState struct {
	Items         []CartItem   `json:"items"`
	SavedForLater []CartItem   `json:"saved_for_later"`
	Promo         *PromoCode   `json:"promo,omitempty"`
	Summary       OrderSummary `json:"summary"`
}

type AuthState struct {
	User    *User  `json:"user,omitempty"`
	Token   string `json:"-"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

func (a AuthState) IsAuthenticated() bool {
	return a.User != nil && a.Token != ""
}

type ProductsState struct {
	Items    []Product `json:"items"`
	Selected *Product  `json:"selected,omitempty"`
	Loading  bool      `json:"loading"`
	Error    string    `json:"error,omitempty"`
}

type CategoriesState struct {
	Items   []Category `json:"items"`
	Loading bool       `json:"loading"`
	Error   string     `json:"error,omitempty"`
}

const (
	NotifyInfo    = "info"
	NotifySuccess = "success"
	NotifyError   = "error"
)

type UIState struct {
	Loading           bool   `json:"loading"`
	Notification      string `json:"notification,omitempty"`
	NotificationLevel string `json:"notification_level,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with s.
func (s AppState) Clone() AppState {
	out := s
	out.Cart.Items = cloneItems(s.Cart.Items)
	out.Cart.SavedForLater = cloneItems(s.Cart.SavedForLater)
	if s.Cart.Promo != nil {
		p := *s.Cart.Promo
		out.Cart.Promo = &p
	}
	if s.Auth.User != nil {
		u := *s.Auth.User
		out.Auth.User = &u
	}
	if s.Products.Items != nil {
		out.Products.Items = append([]Product(nil), s.Products.Items...)
	}
	if s.Products.Selected != nil {
		p := *s.Products.Selected
		out.Products.Selected = &p
	}
	if s.Categories.Items != nil {
		out.Categories.Items = append([]Category(nil), s.Categories.Items...)
	}
	return out
}

func cloneItems(items []CartItem) []CartItem {
	if items == nil {
		return nil
	}
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}
