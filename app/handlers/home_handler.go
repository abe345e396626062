package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-cart/app/store"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type StateHandler struct {
	base
}

func NewStateHandler(rnd *render.Render, validate *validator.Validate, logger *zap.Logger) *StateHandler {
	return &StateHandler{base: base{render: rnd, validator: validate, logger: logger}}
}

// GetState returns the whole state tree of the session.
func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	state := st.State()
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   state,
		"cart":   newCartView(state.Cart),
	})
}

func (h *StateHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	st.Dispatch(store.DismissNotification{})
	h.success(w, http.StatusOK, st.State().UI)
}

func (h *StateHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
