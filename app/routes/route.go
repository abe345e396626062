package routes

import (
	"net/http"

	"github.com/Rakhulsr/go-cart/app/handlers"
	"github.com/Rakhulsr/go-cart/app/middlewares"
	"github.com/Rakhulsr/go-cart/app/services"
	"github.com/Rakhulsr/go-cart/app/store"
	"github.com/Rakhulsr/go-cart/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type Deps struct {
	Render      *render.Render
	Logger      *zap.Logger
	Sessions    sessions.SessionStore
	Registry    *store.Registry
	CartSvc     *services.CartService
	CatalogSvc  *services.CatalogService
	AuthSvc     *services.AuthService
	CheckoutSvc *services.CheckoutService
}

func NewRouter(d Deps) *mux.Router {
	validate := validator.New(validator.WithRequiredStructEnabled())

	stateHandler := handlers.NewStateHandler(d.Render, validate, d.Logger)
	cartHandler := handlers.NewCartHandler(d.Render, validate, d.CartSvc, d.Logger)
	productHandler := handlers.NewProductHandler(d.Render, validate, d.CatalogSvc, d.Logger)
	authHandler := handlers.NewAuthHandler(d.Render, validate, d.AuthSvc, d.Sessions, d.Registry, d.Logger)
	checkoutHandler := handlers.NewCheckoutHandler(d.Render, validate, d.CheckoutSvc, d.Logger)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger(d.Logger))
	router.HandleFunc("/healthz", stateHandler.Health).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middlewares.SessionMiddleware(d.Sessions, d.Registry, d.AuthSvc, d.Logger))
	api.Use(csrfHeader)

	api.HandleFunc("/state", stateHandler.GetState).Methods("GET")
	api.HandleFunc("/ui/notification", stateHandler.DismissNotification).Methods("DELETE")

	api.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	api.HandleFunc("/cart", cartHandler.ClearCart).Methods("DELETE")
	api.HandleFunc("/cart/items", cartHandler.AddItemToCart).Methods("POST")
	api.HandleFunc("/cart/items", cartHandler.RemoveItemFromCart).Methods("DELETE")
	api.HandleFunc("/cart/items/quantity", cartHandler.UpdateCartItemQty).Methods("PATCH")
	api.HandleFunc("/cart/items/variant", cartHandler.UpdateCartItemVariant).Methods("PATCH")
	api.HandleFunc("/cart/items/save", cartHandler.SaveForLater).Methods("POST")
	api.HandleFunc("/cart/saved/move", cartHandler.MoveToCart).Methods("POST")
	api.HandleFunc("/cart/promo", cartHandler.ApplyPromo).Methods("POST")
	api.HandleFunc("/cart/promo", cartHandler.RemovePromo).Methods("DELETE")

	api.HandleFunc("/products", productHandler.GetProducts).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.ProductDetail).Methods("GET")
	api.HandleFunc("/categories", productHandler.GetCategories).Methods("GET")

	adminOnly := middlewares.AdminAuthMiddleware(d.Render, d.Logger)
	api.Handle("/products", adminOnly(http.HandlerFunc(productHandler.CreateProduct))).Methods("POST")

	api.HandleFunc("/auth/register", authHandler.RegisterPost).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.LoginPost).Methods("POST")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	api.HandleFunc("/checkout", checkoutHandler.Checkout).Methods("POST")
	api.HandleFunc("/orders/{code}", checkoutHandler.OrderDetail).Methods("GET")
	router.HandleFunc("/checkout/finish", checkoutHandler.CheckoutFinish).Methods("GET")

	return router
}

// csrfHeader hands the CSRF token to API clients. It is empty unless the
// router runs behind Protect.
func csrfHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := csrf.Token(r); token != "" {
			w.Header().Set("X-CSRF-Token", token)
		}
		next.ServeHTTP(w, r)
	})
}

// Protect wraps h with CSRF checks on unsafe methods and method overrides.
func Protect(h http.Handler, authKey []byte, secure bool, rnd *render.Render) http.Handler {
	protect := csrf.Protect(authKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rnd.JSON(w, http.StatusForbidden, map[string]interface{}{
				"status":  "error",
				"message": "Invalid CSRF token.",
			})
		})),
	)
	return middlewares.MethodOverrideMiddleware(protect(h))
}
