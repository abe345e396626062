package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-cart/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	base
	checkoutSvc *services.CheckoutService
}

func NewCheckoutHandler(rnd *render.Render, validate *validator.Validate, checkoutSvc *services.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		base:        base{render: rnd, validator: validate, logger: logger},
		checkoutSvc: checkoutSvc,
	}
}

// Checkout places the order and hands back where the client should navigate
// to pay.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	order, err := h.checkoutSvc.Checkout(r.Context(), st)
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"status":       "success",
		"redirect_url": order.PaymentURL,
		"data":         order,
	})
}

func (h *CheckoutHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkoutSvc.FindOrder(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.success(w, http.StatusOK, order)
}

// CheckoutFinish is where the payment page sends the shopper back to.
func (h *CheckoutHandler) CheckoutFinish(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("order_code")
	if code == "" {
		h.fail(w, http.StatusBadRequest, "order_code is required", nil)
		return
	}
	order, err := h.checkoutSvc.FindOrder(r.Context(), code)
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.success(w, http.StatusOK, order)
}
