package handlers

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type itemKeyRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func (k itemKeyRequest) key() models.ItemKey {
	return models.ItemKey{ID: k.ProductID, Size: k.Size, Color: k.Color}
}

type addItemRequest struct {
	itemKeyRequest
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type updateQuantityRequest struct {
	itemKeyRequest
	Quantity int `json:"quantity"`
}

type updateVariantRequest struct {
	itemKeyRequest
	NewSize  string `json:"new_size"`
	NewColor string `json:"new_color"`
}

type promoRequest struct {
	Code string `json:"code"`
}

type CartHandler struct {
	base
	cartSvc *services.CartService
}

func NewCartHandler(rnd *render.Render, validate *validator.Validate, cartSvc *services.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		base:    base{render: rnd, validator: validate, logger: logger},
		cartSvc: cartSvc,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	h.success(w, http.StatusOK, newCartView(st.Cart()))
}

func (h *CartHandler) AddItemToCart(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	var req addItemRequest
	if !h.bind(w, r, &req) {
		return
	}

	variant := models.Variant{Size: req.Size, Color: req.Color}
	cart, err := h.cartSvc.AddItemToCart(r.Context(), st, req.ProductID, variant, req.Quantity)
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.success(w, http.StatusCreated, newCartView(cart))
}

// UpdateCartItemQty answers 200 even when the quantity was out of range;
// "applied" tells the client whether the cart changed.
func (h *CartHandler) UpdateCartItemQty(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	var req updateQuantityRequest
	if !h.bind(w, r, &req) {
		return
	}

	cart, err := h.cartSvc.UpdateCartItemQty(st, req.key(), req.Quantity)
	if err != nil && !errors.Is(err, services.ErrQuantityOutOfRange) {
		h.failErr(w, r, err)
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"applied": err == nil,
		"data":    newCartView(cart),
	})
}

func (h *CartHandler) UpdateCartItemVariant(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	var req updateVariantRequest
	if !h.bind(w, r, &req) {
		return
	}

	variant := models.Variant{Size: req.NewSize, Color: req.NewColor}
	cart, err := h.cartSvc.UpdateCartItemVariant(r.Context(), st, req.key(), variant)
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.success(w, http.StatusOK, newCartView(cart))
}

func (h *CartHandler) RemoveItemFromCart(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	var req itemKeyRequest
	if !h.bind(w, r, &req) {
		return
	}
	h.success(w, http.StatusOK, newCartView(h.cartSvc.RemoveItemFromCart(st, req.key())))
}

func (h *CartHandler) SaveForLater(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	var req itemKeyRequest
	if !h.bind(w, r, &req) {
		return
	}
	cart, err := h.cartSvc.SaveForLater(st, req.key())
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.success(w, http.StatusOK, newCartView(cart))
}

func (h *CartHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	var req itemKeyRequest
	if !h.bind(w, r, &req) {
		return
	}
	cart, err := h.cartSvc.MoveToCart(st, req.key())
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.success(w, http.StatusOK, newCartView(cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	h.success(w, http.StatusOK, newCartView(h.cartSvc.ClearCart(st)))
}

// ApplyPromo always answers 200; a rejected code is reported in the result.
func (h *CartHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	var req promoRequest
	if !h.bind(w, r, &req) {
		return
	}

	result := h.cartSvc.ApplyPromo(st, req.Code)
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"result": result,
		"data":   newCartView(st.Cart()),
	})
}

func (h *CartHandler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	h.success(w, http.StatusOK, newCartView(h.cartSvc.RemovePromo(st)))
}
