package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/Rakhulsr/go-cart/app/helpers"
	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/repositories"
	"github.com/Rakhulsr/go-cart/app/services"
	"github.com/Rakhulsr/go-cart/app/store"
	"github.com/Rakhulsr/go-cart/app/utils/calc"
	"github.com/Rakhulsr/go-cart/app/utils/renderer"
	"github.com/Rakhulsr/go-cart/app/utils/sessions"
	"github.com/gorilla/securecookie"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	server   *httptest.Server
	registry *store.Registry
	tee      models.Product
}

type envelope struct {
	Status      string            `json:"status"`
	Message     string            `json:"message"`
	Errors      map[string]string `json:"errors"`
	Applied     *bool             `json:"applied"`
	RedirectURL string            `json:"redirect_url"`
	Result      *struct {
		Success  bool            `json:"success"`
		Message  string          `json:"message"`
		Discount decimal.Decimal `json:"discount"`
	} `json:"result"`
	Data json.RawMessage `json:"data"`
}

type cartBody struct {
	Items []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	Summary struct {
		Subtotal decimal.Decimal `json:"subtotal"`
		Discount decimal.Decimal `json:"discount"`
		Total    decimal.Decimal `json:"total"`
	} `json:"summary"`
	ItemCount int `json:"item_count"`
}

func newTestApp(t *testing.T, protect bool) *testApp {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	catalog := repositories.NewMemoryCatalog(0)
	apparel := models.Category{Name: "Apparel", Slug: "apparel"}
	require.NoError(t, catalog.Categories().Create(ctx, &apparel))
	tee := models.Product{
		Name:       "Classic Tee",
		Slug:       "classic-tee",
		CategoryID: apparel.ID,
		Price:      decimal.RequireFromString("25.00"),
		Stock:      5,
		Sizes:      []string{"S", "M"},
		Colors:     []string{"Black"},
	}
	require.NoError(t, catalog.Products().Create(ctx, &tee))

	users := repositories.NewMemoryUserRepository()
	hashed, err := helpers.HashPassword("admin-secret")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &models.User{
		FirstName: "Ada",
		Email:     "admin@example.com",
		Password:  hashed,
		Role:      models.RoleAdmin,
	}))

	calculator := calc.NewCalculator(calc.DefaultConfig())
	promos, err := services.NewPromoService(services.DefaultPromoCodes(), logger)
	require.NoError(t, err)

	registry := store.NewRegistry(calculator, logger, store.WithPromoCheck(promos.Eligible))
	rnd := renderer.New(false)
	router := NewRouter(Deps{
		Render:      rnd,
		Logger:      logger,
		Sessions:    sessions.NewCookieSessionStore(false, securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32)),
		Registry:    registry,
		CartSvc:     services.NewCartService(catalog.Products(), promos, logger),
		CatalogSvc:  services.NewCatalogService(catalog.Products(), catalog.Categories(), logger),
		AuthSvc:     services.NewAuthService(users, logger),
		CheckoutSvc: services.NewCheckoutService(repositories.NewMemoryOrderRepository(), services.RedirectGateway{BaseURL: "http://shop.test"}, logger),
	})

	var h http.Handler = router
	if protect {
		h = Protect(router, securecookie.GenerateRandomKey(32), false, rnd)
	}
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return &testApp{server: server, registry: registry, tee: tee}
}

// client returns an HTTP client with its own cookie jar, i.e. its own
// browser session.
func (a *testApp) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func (a *testApp) do(t *testing.T, c *http.Client, method, path string, body interface{}, headers ...string) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func decodeCart(t *testing.T, env envelope) cartBody {
	t.Helper()
	var cart cartBody
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	return cart
}

func (a *testApp) addTee(t *testing.T, c *http.Client, qty int) cartBody {
	t.Helper()
	resp, env := a.do(t, c, http.MethodPost, "/api/cart/items", map[string]interface{}{
		"product_id": a.tee.ID,
		"size":       "M",
		"color":      "Black",
		"quantity":   qty,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	return decodeCart(t, env)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, false)
	resp, err := app.client(t).Get(app.server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestCartKeepsStatePerSession(t *testing.T) {
	app := newTestApp(t, false)
	alice, bob := app.client(t), app.client(t)

	cart := app.addTee(t, alice, 2)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, "50.00", cart.Summary.Subtotal.StringFixed(2))

	_, env := app.do(t, alice, http.MethodGet, "/api/cart", nil)
	assert.Len(t, decodeCart(t, env).Items, 1)

	_, env = app.do(t, bob, http.MethodGet, "/api/cart", nil)
	assert.Empty(t, decodeCart(t, env).Items)
}

func TestAddItemRejections(t *testing.T) {
	app := newTestApp(t, false)
	c := app.client(t)

	tests := []struct {
		name   string
		body   map[string]interface{}
		status int
	}{
		{"validation", map[string]interface{}{"product_id": "", "quantity": 0}, http.StatusBadRequest},
		{"unknown product", map[string]interface{}{"product_id": "missing", "quantity": 1}, http.StatusNotFound},
		{"unknown size", map[string]interface{}{"product_id": app.tee.ID, "size": "XXL", "color": "Black", "quantity": 1}, http.StatusUnprocessableEntity},
		{"over stock", map[string]interface{}{"product_id": app.tee.ID, "size": "M", "color": "Black", "quantity": 6}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := app.do(t, c, http.MethodPost, "/api/cart/items", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, "error", env.Status)
		})
	}

	resp, env := app.do(t, c, http.MethodPost, "/api/cart/items", map[string]interface{}{"quantity": 0})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Errors, "productid")
	assert.Contains(t, env.Errors, "quantity")

	resp, _ = app.do(t, c, http.MethodPost, "/api/cart/items", map[string]interface{}{"product_id": app.tee.ID, "quantity": 1, "bogus": true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateQuantityOutOfRangeIsIgnored(t *testing.T) {
	app := newTestApp(t, false)
	c := app.client(t)
	app.addTee(t, c, 2)

	key := map[string]interface{}{"product_id": app.tee.ID, "size": "M", "color": "Black"}
	update := func(qty int) (*http.Response, envelope) {
		body := map[string]interface{}{"quantity": qty}
		for k, v := range key {
			body[k] = v
		}
		return app.do(t, c, http.MethodPatch, "/api/cart/items/quantity", body)
	}

	resp, env := update(3)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Applied)
	assert.True(t, *env.Applied)
	assert.Equal(t, 3, decodeCart(t, env).Items[0].Quantity)

	for _, qty := range []int{0, 6} {
		resp, env = update(qty)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, env.Applied)
		assert.False(t, *env.Applied, "qty %d", qty)
		assert.Equal(t, 3, decodeCart(t, env).Items[0].Quantity)
	}

	resp, _ = app.do(t, c, http.MethodPatch, "/api/cart/items/quantity", map[string]interface{}{"product_id": "missing", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveForLaterAndBack(t *testing.T) {
	app := newTestApp(t, false)
	c := app.client(t)
	app.addTee(t, c, 1)
	key := map[string]interface{}{"product_id": app.tee.ID, "size": "M", "color": "Black"}

	resp, env := app.do(t, c, http.MethodPost, "/api/cart/items/save", key)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeCart(t, env).Items)

	resp, _ = app.do(t, c, http.MethodPost, "/api/cart/items/save", key)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env = app.do(t, c, http.MethodPost, "/api/cart/saved/move", key)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeCart(t, env).Items, 1)

	resp, env = app.do(t, c, http.MethodDelete, "/api/cart/items", key)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeCart(t, env).Items)
}

func TestApplyPromo(t *testing.T) {
	app := newTestApp(t, false)
	c := app.client(t)
	app.addTee(t, c, 2)

	resp, env := app.do(t, c, http.MethodPost, "/api/cart/promo", map[string]string{"code": "BOGUS"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Result)
	assert.False(t, env.Result.Success)
	assert.Equal(t, services.MsgInvalidPromoCode, env.Result.Message)

	resp, env = app.do(t, c, http.MethodPost, "/api/cart/promo", map[string]string{"code": " save10 "})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Result)
	assert.True(t, env.Result.Success)
	assert.Equal(t, "5.00", env.Result.Discount.StringFixed(2))

	cart := decodeCart(t, env)
	assert.Equal(t, "5.00", cart.Summary.Discount.StringFixed(2))
	assert.Equal(t, "58.99", cart.Summary.Total.StringFixed(2))

	_, env = app.do(t, c, http.MethodGet, "/api/state", nil)
	var state models.AppState
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.Equal(t, models.NotifySuccess, state.UI.NotificationLevel)

	_, env = app.do(t, c, http.MethodDelete, "/api/ui/notification", nil)
	var ui models.UIState
	require.NoError(t, json.Unmarshal(env.Data, &ui))
	assert.Empty(t, ui.Notification)

	_, env = app.do(t, c, http.MethodDelete, "/api/cart/promo", nil)
	assert.True(t, decodeCart(t, env).Summary.Discount.IsZero())
}

func TestCheckout(t *testing.T) {
	app := newTestApp(t, false)
	c := app.client(t)

	resp, env := app.do(t, c, http.MethodPost, "/api/checkout", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "error", env.Status)

	app.addTee(t, c, 1)
	resp, env = app.do(t, c, http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, "http://shop.test/checkout/finish?order_code="+order.OrderCode, env.RedirectURL)
	require.Len(t, order.OrderItems, 1)

	_, env = app.do(t, c, http.MethodGet, "/api/cart", nil)
	assert.Empty(t, decodeCart(t, env).Items)

	resp, _ = app.do(t, c, http.MethodGet, "/api/orders/"+order.OrderCode, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = app.do(t, c, http.MethodGet, "/checkout/finish?order_code="+order.OrderCode, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = app.do(t, c, http.MethodGet, "/checkout/finish?order_code=ORD-NOPE", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t, false)
	c := app.client(t)

	resp, _ := app.do(t, c, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	register := map[string]string{
		"first_name": "Grace",
		"email":      "Grace@Example.com",
		"password":   "hopper123",
	}
	resp, _ = app.do(t, c, http.MethodPost, "/api/auth/register", register)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = app.do(t, c, http.MethodPost, "/api/auth/register", register)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = app.do(t, c, http.MethodPost, "/api/auth/login", map[string]string{"email": "grace@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = app.do(t, c, http.MethodPost, "/api/auth/login", map[string]string{"email": "grace@example.com", "password": "hopper123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := app.do(t, c, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user models.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "grace@example.com", user.Email)
	assert.Empty(t, user.Password)

	resp, _ = app.do(t, c, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = app.do(t, c, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutEndsSession(t *testing.T) {
	app := newTestApp(t, false)
	c := app.client(t)

	resp, _ := app.do(t, c, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "admin-secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	app.addTee(t, c, 1)
	require.Equal(t, 1, app.registry.Len())

	resp, _ = app.do(t, c, http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, app.registry.Len())

	_, env := app.do(t, c, http.MethodGet, "/api/cart", nil)
	assert.Empty(t, decodeCart(t, env).Items)
	assert.Equal(t, 1, app.registry.Len())
}

func TestPromoWithdrawnWhenCartShrinks(t *testing.T) {
	app := newTestApp(t, false)
	c := app.client(t)
	app.addTee(t, c, 5)

	_, env := app.do(t, c, http.MethodPost, "/api/cart/promo", map[string]string{"code": "SAVE25"})
	require.NotNil(t, env.Result)
	require.True(t, env.Result.Success)

	_, env = app.do(t, c, http.MethodPatch, "/api/cart/items/quantity", map[string]interface{}{
		"product_id": app.tee.ID, "size": "M", "color": "Black", "quantity": 1,
	})
	cart := decodeCart(t, env)
	assert.True(t, cart.Summary.Discount.IsZero())
	assert.Equal(t, "36.99", cart.Summary.Total.StringFixed(2))
}

func TestStockSharedAcrossVariants(t *testing.T) {
	app := newTestApp(t, false)
	c := app.client(t)
	app.addTee(t, c, 5)

	resp, _ := app.do(t, c, http.MethodPost, "/api/cart/items", map[string]interface{}{
		"product_id": app.tee.ID, "size": "S", "color": "Black", "quantity": 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	app := newTestApp(t, false)
	product := map[string]interface{}{
		"name":          "Canvas Tote",
		"category_slug": "apparel",
		"price":         "18.50",
		"stock":         4,
	}

	guest := app.client(t)
	resp, _ := app.do(t, guest, http.MethodPost, "/api/products", product)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	customer := app.client(t)
	resp, _ = app.do(t, customer, http.MethodPost, "/api/auth/register", map[string]string{"first_name": "Cy", "email": "cy@example.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = app.do(t, customer, http.MethodPost, "/api/auth/login", map[string]string{"email": "cy@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = app.do(t, customer, http.MethodPost, "/api/products", product)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := app.client(t)
	resp, _ = app.do(t, admin, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "admin-secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env := app.do(t, admin, http.MethodPost, "/api/products", product)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)
	var created models.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "canvas-tote", created.Slug)

	bad := map[string]interface{}{"name": "Ghost", "category_slug": "nope", "price": "1.00"}
	resp, _ = app.do(t, admin, http.MethodPost, "/api/products", bad)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, env = app.do(t, guest, http.MethodGet, "/api/products?category=apparel", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []models.Product
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, 2)

	resp, _ = app.do(t, guest, http.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = app.do(t, guest, http.MethodGet, "/api/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProtectRequiresCSRFToken(t *testing.T) {
	app := newTestApp(t, true)
	c := app.client(t)

	resp, _ := app.do(t, c, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := resp.Header.Get("X-CSRF-Token")
	require.NotEmpty(t, token)

	body := map[string]interface{}{"product_id": app.tee.ID, "size": "M", "color": "Black", "quantity": 1}
	resp, env := app.do(t, c, http.MethodPost, "/api/cart/items", body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Invalid CSRF token.", env.Message)

	resp, _ = app.do(t, c, http.MethodPost, "/api/cart/items", body, "X-CSRF-Token", token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// POST tunnelled as DELETE still needs the token and reaches the DELETE route.
	resp, env = app.do(t, c, http.MethodPost, "/api/cart", nil, "X-CSRF-Token", token, "X-HTTP-Method-Override", "DELETE")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeCart(t, env).Items)
}
