package middleware

import (
	"net/http"

	"github.com/sivermarket/siver-backend/api/responses"
	"github.com/sivermarket/siver-backend/pkg/enums"
	pkgerrors "github.com/sivermarket/siver-backend/pkg/errors"
	"github.com/sivermarket/siver-backend/pkg/logger"
)

// RequireManager gates endpoints that mutate consolidation or rate state.
func RequireManager(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := enums.ParseActorRole(RoleFromContext(r.Context()))
			if !ok || !role.CanManage() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "manager role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
