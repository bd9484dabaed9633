package middlewares

import (
	"net/http"

	h "api/internal/helpers"
	"api/internal/models"
	"api/internal/rbac"
)

// AuthorizeRole checks if the authenticated user has at least the required role.
// Uses hierarchical role checking (Admin > User > Guest).
func AuthorizeRole(requiredRole models.Role) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := r.Context().Value(models.UserClaimKey{}).(models.UserClaims)
			if !ok {
				h.RespondWithError(w, 401, []string{"UNAUTHORIZED"})
				return
			}

			if !rbac.HasRole(userClaims.Role, requiredRole) {
				h.RespondWithError(w, 403, []string{"FORBIDDEN"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
