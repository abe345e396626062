package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/repositories"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGateway struct {
	url   string
	err   error
	order *models.Order
	// during runs while the payment is being opened
	during func()
}

func (g *fakeGateway) CreatePayment(ctx context.Context, order *models.Order, user *models.User) (string, error) {
	g.order = order
	if g.during != nil {
		g.during()
	}
	return g.url, g.err
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cart := f.cartService(t)
	fill(t, f, cart)
	require.True(t, cart.ApplyPromo(f.st, "SAVE10").Success)

	orders := repositories.NewMemoryOrderRepository()
	gw := &fakeGateway{url: "https://pay.example.com/abc"}
	svc := NewCheckoutService(orders, gw, zap.NewNop())

	order, err := svc.Checkout(ctx, f.st)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/abc", order.PaymentURL)
	assert.Equal(t, "SAVE10", order.PromoCode)
	assert.Len(t, order.OrderItems, 2)
	assertMoney(t, "196.00", order.GrandTotal, "total")

	stored, err := svc.FindOrder(ctx, order.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.Equal(t, order.PaymentURL, stored.PaymentURL)

	state := f.st.State()
	assert.Empty(t, state.Cart.Items)
	assert.True(t, state.Cart.Summary.IsZero())
	assert.Equal(t, models.NotifySuccess, state.UI.NotificationLevel)

	_, err = svc.Checkout(ctx, f.st)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.FindOrder(ctx, "ORD-NOPE")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCheckoutService_KeepsItemsAddedDuringPayment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cart := f.cartService(t)
	_, err := cart.AddItemToCart(ctx, f.st, f.tee.ID, mediumBlack, 2)
	require.NoError(t, err)

	gw := &fakeGateway{url: "https://pay.example.com/xyz"}
	gw.during = func() {
		_, err := cart.AddItemToCart(ctx, f.st, f.mug.ID, models.Variant{}, 1)
		require.NoError(t, err)
		_, err = cart.AddItemToCart(ctx, f.st, f.tee.ID, mediumBlack, 1)
		require.NoError(t, err)
	}
	svc := NewCheckoutService(repositories.NewMemoryOrderRepository(), gw, zap.NewNop())

	order, err := svc.Checkout(ctx, f.st)
	require.NoError(t, err)
	require.Len(t, order.OrderItems, 1)

	items := f.st.Cart().Items
	require.Len(t, items, 2)
	assert.Equal(t, f.tee.ID, items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, f.mug.ID, items[1].ID)
}

func TestCheckoutService_GatewayFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cart := f.cartService(t)
	fill(t, f, cart)

	orders := repositories.NewMemoryOrderRepository()
	gw := &fakeGateway{err: errors.New("gateway down")}
	svc := NewCheckoutService(orders, gw, zap.NewNop())

	_, err := svc.Checkout(ctx, f.st)
	require.Error(t, err)

	stored, err := orders.FindByCode(ctx, gw.order.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusFailed, stored.Status)
	assert.Len(t, f.st.Cart().Items, 2)
	assert.Equal(t, models.NotifyError, f.st.State().UI.NotificationLevel)
}

func TestRedirectGateway(t *testing.T) {
	url, err := RedirectGateway{BaseURL: "http://localhost:8080/"}.CreatePayment(context.Background(), &models.Order{OrderCode: "ORD-1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/checkout/finish?order_code=ORD-1", url)
}

type fakeSnap struct {
	req  *snap.Request
	resp *snap.Response
	err  *midtrans.Error
}

func (f *fakeSnap) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	f.req = req
	return f.resp, f.err
}

func TestMidtransGateway_ItemsAddUpToGross(t *testing.T) {
	client := &fakeSnap{resp: &snap.Response{Token: "tok", RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/tok"}}
	gw := &MidtransGateway{client: client, baseURL: "http://shop.test"}

	order := &models.Order{
		OrderCode: "ORD-42",
		PromoCode: "SAVE10",
		OrderItems: []models.OrderItem{
			{ProductID: "tee", ProductName: "Classic Tee", Size: "M", Color: "Black", Qty: 3, Price: decimal.RequireFromString("19.49")},
		},
		Subtotal:   decimal.RequireFromString("58.47"),
		TaxAmount:  decimal.RequireFromString("4.68"),
		Shipping:   decimal.RequireFromString("9.99"),
		Discount:   decimal.RequireFromString("5.85"),
		GrandTotal: decimal.RequireFromString("67.29"),
	}

	url, err := gw.CreatePayment(context.Background(), order, &models.User{FirstName: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, client.resp.RedirectURL, url)

	req := client.req
	require.NotNil(t, req)
	assert.Equal(t, int64(67), req.TransactionDetails.GrossAmt)
	assert.Equal(t, "http://shop.test/checkout/finish?order_code=ORD-42", req.Callbacks.Finish)
	require.NotNil(t, req.CustomerDetail)
	assert.Equal(t, "ada@example.com", req.CustomerDetail.Email)

	var sum int64
	ids := map[string]bool{}
	for _, it := range *req.Items {
		sum += it.Price * int64(it.Qty)
		ids[it.ID] = true
		assert.LessOrEqual(t, len(it.Name), 50)
	}
	assert.Equal(t, req.TransactionDetails.GrossAmt, sum)
	assert.True(t, ids["TAX"])
	assert.True(t, ids["SHIPPING_FEE"])
	assert.True(t, ids["DISCOUNT"])
	assert.True(t, ids["ADJUSTMENT"])
}

func TestMidtransGateway_Error(t *testing.T) {
	client := &fakeSnap{err: &midtrans.Error{Message: "unauthorized", StatusCode: 401}}
	gw := &MidtransGateway{client: client}

	_, err := gw.CreatePayment(context.Background(), &models.Order{OrderCode: "ORD-1", GrandTotal: decimal.NewFromInt(1)}, nil)
	assert.Error(t, err)
}
