package httpx

import (
	"net/http"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
	"github.com/MrFrey75/AppSimple-sub001/pkg/slogx"
)

// DenyObserver is told about every request RequirePermission rejects.
type DenyObserver func(r *http.Request, p authz.Permission)

// RequirePermission lets the request through only if the authenticated role
// holds p in the authz table. It must run after AuthnMiddleware.
func RequirePermission(p authz.Permission, observers ...DenyObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := RoleFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			if !authz.Grants(role, p) {
				slogx.FromContext(r.Context()).Warn("permission denied",
					"role", role.String(),
					"permission", p.String(),
				)
				for _, o := range observers {
					o(r, p)
				}
				WriteJSON(w, http.StatusForbidden, errorBody{
					Error:            "permission_denied",
					ErrorDescription: "you do not have permission to perform this action",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
