package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-cart/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type ProductHandler struct {
	base
	catalogSvc *services.CatalogService
}

func NewProductHandler(rnd *render.Render, validate *validator.Validate, catalogSvc *services.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		base:       base{render: rnd, validator: validate, logger: logger},
		catalogSvc: catalogSvc,
	}
}

// GetProducts lists the catalog; ?category=<slug> narrows it.
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	products, err := h.catalogSvc.FetchProducts(r.Context(), st, r.URL.Query().Get("category"))
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.success(w, http.StatusOK, products)
}

func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	product, err := h.catalogSvc.FetchProduct(r.Context(), st, mux.Vars(r)["id"])
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.success(w, http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	var input services.CreateProductInput
	if !h.bind(w, r, &input) {
		return
	}
	product, err := h.catalogSvc.CreateProduct(r.Context(), st, input)
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.success(w, http.StatusCreated, product)
}

func (h *ProductHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	categories, err := h.catalogSvc.FetchCategories(r.Context(), st)
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.success(w, http.StatusOK, categories)
}
