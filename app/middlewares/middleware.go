package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Rakhulsr/go-cart/app/helpers"
	"github.com/Rakhulsr/go-cart/app/services"
	"github.com/Rakhulsr/go-cart/app/store"
	"github.com/Rakhulsr/go-cart/app/utils/sessions"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoreFromContext returns the session store put in place by
// SessionMiddleware.
func StoreFromContext(ctx context.Context) (*store.Store, bool) {
	st, ok := ctx.Value(helpers.ContextKeyStore).(*store.Store)
	return st, ok && st != nil
}

func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(helpers.ContextKeySessionID).(string)
	return id
}

// SessionMiddleware binds every request to the state store of its browser
// session and restores the login recorded in the session cookie.
func SessionMiddleware(sessionStore sessions.SessionStore, registry *store.Registry, authSvc *services.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, err := sessionStore.SessionID(w, r)
			if err != nil {
				logger.Error("failed to establish session", zap.Error(err))
				http.Error(w, "session unavailable", http.StatusInternalServerError)
				return
			}
			st := registry.Get(sessionID)

			if userID, token := sessionStore.GetAuth(r); userID != "" {
				if _, err := authSvc.Restore(r.Context(), st, userID, token); err != nil {
					logger.Debug("stale login dropped", zap.String("session_id", sessionID), zap.Error(err))
					if cerr := sessionStore.ClearAuth(w, r); cerr != nil {
						logger.Warn("failed to clear stale login", zap.Error(cerr))
					}
				}
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeySessionID, sessionID)
			ctx = context.WithValue(ctx, helpers.ContextKeyStore, st)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set("X-Request-ID", requestID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			ctx := context.WithValue(r.Context(), helpers.ContextKeyRequestID, requestID)
			next.ServeHTTP(rec, r.WithContext(ctx))

			logger.Info("request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

// MethodOverrideMiddleware lets clients that can only POST tunnel PATCH and
// DELETE through the X-HTTP-Method-Override header or a _method form field.
func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			override := r.Header.Get("X-HTTP-Method-Override")
			if override == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
				_ = r.ParseForm()
				override = r.Form.Get("_method")
			}
			switch m := strings.ToUpper(override); m {
			case http.MethodPatch, http.MethodPut, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
