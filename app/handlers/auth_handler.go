package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-cart/app/middlewares"
	"github.com/Rakhulsr/go-cart/app/services"
	"github.com/Rakhulsr/go-cart/app/store"
	"github.com/Rakhulsr/go-cart/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

type AuthHandler struct {
	base
	authSvc  *services.AuthService
	sessions sessions.SessionStore
	registry *store.Registry
}

func NewAuthHandler(rnd *render.Render, validate *validator.Validate, authSvc *services.AuthService, sessionStore sessions.SessionStore, registry *store.Registry, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		base:     base{render: rnd, validator: validate, logger: logger},
		authSvc:  authSvc,
		sessions: sessionStore,
		registry: registry,
	}
}

func (h *AuthHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if !h.bind(w, r, &input) {
		return
	}
	user, err := h.authSvc.Register(r.Context(), input)
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.success(w, http.StatusCreated, user)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	var input services.LoginInput
	if !h.bind(w, r, &input) {
		return
	}

	user, token, err := h.authSvc.Login(r.Context(), st, input)
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	if err := h.sessions.SetAuth(w, r, user.ID, token); err != nil {
		h.logger.Error("failed to persist login", zap.String("user_id", user.ID), zap.Error(err))
		h.authSvc.Logout(st)
		h.fail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
		return
	}
	h.success(w, http.StatusOK, user)
}

// Logout ends the whole browser session: the login, the cookie and the
// session's cart. The next request starts a fresh session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	h.authSvc.Logout(st)
	if err := h.sessions.ClearSession(w, r); err != nil {
		h.logger.Warn("failed to clear session cookie", zap.Error(err))
	}
	h.registry.Drop(middlewares.SessionIDFromContext(r.Context()))
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Logged out.",
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	st, ok := h.sessionStore(w, r)
	if !ok {
		return
	}
	user, err := h.authSvc.CurrentUser(st)
	if err != nil {
		h.failErr(w, r, err)
		return
	}
	h.success(w, http.StatusOK, user)
}
