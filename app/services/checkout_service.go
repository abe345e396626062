package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/repositories"
	"github.com/Rakhulsr/go-cart/app/store"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentGateway starts a payment for order and returns the URL the shopper
// is sent to. user is nil for guest checkouts.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, order *models.Order, user *models.User) (string, error)
}

type CheckoutService struct {
	orderRepo repositories.OrderRepository
	gateway   PaymentGateway
	logger    *zap.Logger
}

func NewCheckoutService(orderRepo repositories.OrderRepository, gateway PaymentGateway, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		gateway:   gateway,
		logger:    logger,
	}
}

// Checkout turns the cart in st into a pending order, opens a payment for it
// and takes the ordered lines out of the cart. Lines added while the payment
// was opened, and saved-for-later items, are kept.
func (s *CheckoutService) Checkout(ctx context.Context, st *store.Store) (*models.Order, error) {
	state := st.State()
	cart := state.Cart
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		OrderCode:  "ORD-" + strings.ToUpper(uuid.New().String()[:8]),
		Subtotal:   cart.Summary.Subtotal,
		TaxAmount:  cart.Summary.Tax,
		Shipping:   cart.Summary.Shipping,
		Discount:   cart.Summary.Discount,
		GrandTotal: cart.Summary.Total,
		Status:     models.OrderStatusPending,
	}
	if cart.Promo != nil {
		order.PromoCode = cart.Promo.Code
	}
	if state.Auth.User != nil {
		order.UserID = state.Auth.User.ID
	}
	for _, item := range cart.Items {
		order.OrderItems = append(order.OrderItems, models.NewOrderItem(item))
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	paymentURL, err := s.gateway.CreatePayment(ctx, order, state.Auth.User)
	if err != nil {
		s.logger.Error("payment initiation failed", zap.String("order_code", order.OrderCode), zap.Error(err))
		if uerr := s.orderRepo.UpdateStatus(ctx, order.ID, models.OrderStatusFailed); uerr != nil {
			s.logger.Error("failed to mark order failed", zap.String("order_code", order.OrderCode), zap.Error(uerr))
		}
		s.notify(st, models.NotifyError, "Payment could not be started")
		return nil, fmt.Errorf("failed to initiate payment: %w", err)
	}

	if err := s.orderRepo.UpdatePaymentURL(ctx, order.ID, paymentURL); err != nil {
		return nil, fmt.Errorf("failed to save payment url: %w", err)
	}
	order.PaymentURL = paymentURL

	st.Dispatch(store.CheckoutCompleted{Items: cart.Items, PromoCode: order.PromoCode})
	s.notify(st, models.NotifySuccess, "Order "+order.OrderCode+" created")

	s.logger.Info("checkout completed",
		zap.String("order_code", order.OrderCode),
		zap.String("total", order.GrandTotal.StringFixed(2)),
		zap.Int("items", len(order.OrderItems)))
	return order, nil
}

func (s *CheckoutService) FindOrder(ctx context.Context, orderCode string) (*models.Order, error) {
	order, err := s.orderRepo.FindByCode(ctx, orderCode)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	return order, err
}

func (s *CheckoutService) notify(st *store.Store, level, message string) {
	if n, err := store.NewNotify(level, message); err == nil {
		st.Dispatch(n)
	}
}

// RedirectGateway skips the payment provider and sends the shopper straight
// to the finish page. Used when no gateway keys are configured.
type RedirectGateway struct {
	BaseURL string
}

func (g RedirectGateway) CreatePayment(ctx context.Context, order *models.Order, user *models.User) (string, error) {
	return finishURL(g.BaseURL, order.OrderCode), nil
}

func finishURL(baseURL, orderCode string) string {
	return strings.TrimRight(baseURL, "/") + "/checkout/finish?order_code=" + orderCode
}

type snapTransactor interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

type MidtransGateway struct {
	client  snapTransactor
	baseURL string
}

func NewMidtransGateway(client *snap.Client, baseURL string) *MidtransGateway {
	return &MidtransGateway{client: client, baseURL: baseURL}
}

func (g *MidtransGateway) CreatePayment(ctx context.Context, order *models.Order, user *models.User) (string, error) {
	req := buildSnapRequest(order, user, g.baseURL)

	resp, errMidtrans := g.client.CreateTransaction(req)
	if errMidtrans != nil {
		return "", fmt.Errorf("midtrans: %s", errMidtrans.Error())
	}
	if resp == nil || resp.RedirectURL == "" {
		return "", errors.New("midtrans returned no redirect url")
	}
	return resp.RedirectURL, nil
}

const midtransNameLimit = 50

func truncateName(name string) string {
	if len(name) > midtransNameLimit {
		return name[:midtransNameLimit]
	}
	return name
}

// buildSnapRequest maps the order onto Snap line items. Snap works in whole
// currency units and requires the items to add up to the gross amount, so
// rounding drift is booked on an ADJUSTMENT line.
func buildSnapRequest(order *models.Order, user *models.User, baseURL string) *snap.Request {
	var items []midtrans.ItemDetails
	for _, oi := range order.OrderItems {
		name := oi.ProductName
		if oi.Size != "" || oi.Color != "" {
			name = fmt.Sprintf("%s (%s %s)", name, oi.Size, oi.Color)
		}
		items = append(items, midtrans.ItemDetails{
			ID:    oi.ProductID,
			Name:  truncateName(name),
			Price: oi.Price.Round(0).IntPart(),
			Qty:   int32(oi.Qty),
		})
	}

	extra := func(id, name string, amount decimal.Decimal) {
		if amount.IsZero() {
			return
		}
		items = append(items, midtrans.ItemDetails{ID: id, Name: name, Price: amount.Round(0).IntPart(), Qty: 1})
	}
	extra("TAX", "Sales tax", order.TaxAmount)
	extra("SHIPPING_FEE", "Shipping", order.Shipping)
	extra("DISCOUNT", truncateName("Promo "+order.PromoCode), order.Discount.Neg())

	itemsTotal := decimal.Zero
	for _, it := range items {
		itemsTotal = itemsTotal.Add(decimal.NewFromInt(it.Price).Mul(decimal.NewFromInt32(it.Qty)))
	}
	gross := order.GrandTotal.Round(0)
	if diff := gross.Sub(itemsTotal); !diff.IsZero() {
		items = append(items, midtrans.ItemDetails{ID: "ADJUSTMENT", Name: "Rounding adjustment", Price: diff.IntPart(), Qty: 1})
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderCode,
			GrossAmt: gross.IntPart(),
		},
		Items:           &items,
		EnabledPayments: snap.AllSnapPaymentType,
		Callbacks: &snap.Callbacks{
			Finish: finishURL(baseURL, order.OrderCode),
		},
	}
	if user != nil {
		req.CustomerDetail = &midtrans.CustomerDetails{
			FName: user.FirstName,
			LName: user.LastName,
			Email: user.Email,
		}
	}
	return req
}
