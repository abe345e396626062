package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Rakhulsr/go-cart/app/helpers"
	"github.com/Rakhulsr/go-cart/app/middlewares"
	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/repositories"
	"github.com/Rakhulsr/go-cart/app/services"
	"github.com/Rakhulsr/go-cart/app/store"
	"github.com/Rakhulsr/go-cart/app/utils/format"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

// base carries what every handler needs.
type base struct {
	render    *render.Render
	validator *validator.Validate
	logger    *zap.Logger
}

func (b base) success(w http.ResponseWriter, status int, data interface{}) {
	b.render.JSON(w, status, map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

func (b base) fail(w http.ResponseWriter, status int, message string, fields map[string]string) {
	body := map[string]interface{}{
		"status":  "error",
		"message": message,
	}
	if len(fields) > 0 {
		body["errors"] = fields
	}
	b.render.JSON(w, status, body)
}

// failErr maps a service error onto a status code and a client message.
// Unexpected errors are logged and reported without detail.
func (b base) failErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		b.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		b.fail(w, status, http.StatusText(status), nil)
		return
	}
	b.fail(w, status, err.Error(), nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidProduct):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, repositories.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrVariantUnavailable),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrQuantityOutOfRange),
		errors.Is(err, services.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// bind decodes and validates a JSON request body, writing the 400 response
// itself when it fails.
func (b base) bind(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := helpers.DecodeJSONBody(w, r, dst); err != nil {
		b.fail(w, http.StatusBadRequest, err.Error(), nil)
		return false
	}
	if err := b.validator.Struct(dst); err != nil {
		if fields := helpers.ValidationFields(err); fields != nil {
			b.fail(w, http.StatusBadRequest, "Validation failed.", fields)
			return false
		}
		b.fail(w, http.StatusBadRequest, err.Error(), nil)
		return false
	}
	return true
}

func (b base) sessionStore(w http.ResponseWriter, r *http.Request) (*store.Store, bool) {
	st, ok := middlewares.StoreFromContext(r.Context())
	if !ok {
		b.logger.Error("no session store in request context", zap.String("path", r.URL.Path))
		b.fail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
	}
	return st, ok
}

type summaryDisplay struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
}

type cartView struct {
	models.CartState
	ItemCount int            `json:"item_count"`
	Display   summaryDisplay `json:"display"`
}

func newCartView(cart models.CartState) cartView {
	count := 0
	for _, it := range cart.Items {
		count += it.Quantity
	}
	s := cart.Summary
	return cartView{
		CartState: cart,
		ItemCount: count,
		Display: summaryDisplay{
			Subtotal: format.Money(s.Subtotal),
			Tax:      format.Money(s.Tax),
			Shipping: format.Money(s.Shipping),
			Discount: format.Money(s.Discount),
			Total:    format.Money(s.Total),
		},
	}
}
