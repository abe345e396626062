package middlewares

import (
	"net/http"

	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

// AdminAuthMiddleware lets through only sessions logged in as an admin.
func AdminAuthMiddleware(rnd *render.Render, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st, ok := StoreFromContext(r.Context())
			if !ok {
				rnd.JSON(w, http.StatusUnauthorized, map[string]interface{}{"status": "error", "message": "You must be logged in."})
				return
			}
			auth := st.State().Auth
			if !auth.IsAuthenticated() {
				rnd.JSON(w, http.StatusUnauthorized, map[string]interface{}{"status": "error", "message": "You must be logged in."})
				return
			}
			if auth.User.Role != models.RoleAdmin {
				logger.Warn("admin route refused", zap.String("user_id", auth.User.ID), zap.String("path", r.URL.Path))
				rnd.JSON(w, http.StatusForbidden, map[string]interface{}{"status": "error", "message": "You do not have permission to do that."})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
