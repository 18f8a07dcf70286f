package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
	"github.com/MrFrey75/AppSimple-sub001/pkg/httpx"
	"github.com/MrFrey75/AppSimple-sub001/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newSigner(t *testing.T, lifetime time.Duration) *jwtx.HS256 {
	t.Helper()

	s, err := jwtx.NewHS256(jwtx.Config{Secret: testSecret, Lifetime: lifetime})
	require.NoError(t, err)
	return s
}

func token(t *testing.T, s *jwtx.HS256, role authz.Role) string {
	t.Helper()

	tok, err := s.GenerateToken(jwtx.Subject{UID: "u1", Username: "alice", Email: "alice@example.com", Role: role})
	require.NoError(t, err)
	return tok
}

func withBearer(tok string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	return req
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("first"), mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	signer := newSigner(t, time.Hour)

	var seen jwtx.Claims
	h := httpx.AuthnMiddleware(signer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		seen, ok = httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)

		uid, ok := httpx.UserIDFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "u1", uid)

		role, ok := httpx.RoleFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, authz.RoleAdmin, role)

		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token", func(t *testing.T) {
		rec := serve(h, withBearer(token(t, signer, authz.RoleAdmin)))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "alice", seen.Username)
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer "+token(t, signer, authz.RoleAdmin))
		require.Equal(t, http.StatusOK, serve(h, req).Code)
	})

	expired := token(t, newSigner(t, -time.Minute), authz.RoleAdmin)
	foreign, err := jwtx.NewHS256(jwtx.Config{Secret: "ffffffffffffffffffffffffffffffff"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
		{"garbage", "Bearer not.a.token"},
		{"expired", "Bearer " + expired},
		{"foreign secret", "Bearer " + token(t, foreign, authz.RoleAdmin)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := serve(h, req)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
			require.Equal(t, "invalid_token", errorCode(t, rec))
		})
	}
}

func TestRequirePermission(t *testing.T) {
	signer := newSigner(t, time.Hour)

	var denied []authz.Permission
	observe := func(_ *http.Request, p authz.Permission) { denied = append(denied, p) }

	chain := func(p authz.Permission) http.Handler {
		return httpx.Chain(okHandler(),
			httpx.AuthnMiddleware(signer),
			httpx.RequirePermission(p, observe),
		)
	}

	for _, p := range authz.AllPermissions() {
		t.Run("admin "+p.String(), func(t *testing.T) {
			require.Equal(t, http.StatusOK, serve(chain(p), withBearer(token(t, signer, authz.RoleAdmin))).Code)
		})

		t.Run("user "+p.String(), func(t *testing.T) {
			rec := serve(chain(p), withBearer(token(t, signer, authz.RoleUser)))
			if authz.Grants(authz.RoleUser, p) {
				require.Equal(t, http.StatusOK, rec.Code)
				return
			}
			require.Equal(t, http.StatusForbidden, rec.Code)
			require.Equal(t, "permission_denied", errorCode(t, rec))
		})
	}
	require.Len(t, denied, 4)

	t.Run("expired token is 401 not 403", func(t *testing.T) {
		expired := token(t, newSigner(t, 0), authz.RoleUser)
		rec := serve(chain(authz.DeleteUser), withBearer(expired))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "invalid_token", errorCode(t, rec))
	})

	t.Run("without authn", func(t *testing.T) {
		h := httpx.RequirePermission(authz.ViewProfile)(okHandler())
		require.Equal(t, http.StatusUnauthorized, serve(h, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	})
}
