package httpx

import (
	"net/http"
	"strings"

	"github.com/MrFrey75/AppSimple-sub001/pkg/jwtx"
	"github.com/MrFrey75/AppSimple-sub001/pkg/slogx"
)

// AuthnMiddleware requires a valid bearer token. Every failure, expiry
// included, is the same 401 invalid_token response; downstream handlers never
// run for an unauthenticated request, so an expired token can never surface
// as a permission error.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "the access token is invalid or expired")
				return
			}

			role, err := claims.ParsedRole()
			if err != nil {
				log.Warn("jwt role claim rejected", "err", err)
				writeBearerError(w, "the access token is invalid or expired")
				return
			}

			ctx = contextWithAuth(ctx, claims, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, errorBody{
		Error:            "invalid_token",
		ErrorDescription: desc,
	})
}
