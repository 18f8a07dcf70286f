package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/metrics"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/service"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
	"github.com/MrFrey75/AppSimple-sub001/pkg/httpx"
	"github.com/MrFrey75/AppSimple-sub001/pkg/jwtx"
	"github.com/MrFrey75/AppSimple-sub001/pkg/slogx"

	_ "github.com/MrFrey75/AppSimple-sub001/api/docs" // Swagger docs
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	// LoginLimit throttles POST /api/auth/login per IP and username.
	// Defaults to httpx.StrictLimit.
	LoginLimit httpx.RateLimitConfig

	// TrustProxy keys per-IP limits on X-Forwarded-For and X-Real-IP. Only
	// set it behind a proxy that overwrites those headers.
	TrustProxy bool

	AuthService      *service.AuthService
	UserService      *service.UserService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		LoginLimit:   httpx.StrictLimit,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	if !r.LoginLimit.Valid() {
		r.LoginLimit = httpx.StrictLimit
	}

	r.registerAuth()
	r.registerUsers()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			AppSimple API
//	@version		0.1.0
//	@description	User management API. Access tokens are HS256 JWTs carrying the user's role; every endpoint checks the role against one fixed permission table.
//	@description
//	@description				Tokens cannot be revoked. They stay valid until they expire, even across password changes, role changes and database resets.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) clientIP() httpx.KeyExtractor {
	return httpx.ClientIPKeyExtractor(r.TrustProxy)
}

// secured is the chain in front of every protected endpoint: a valid token,
// then the permission, then a per-user limit.
func (r *Router) secured(h http.Handler, p authz.Permission, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(countingVerifier{r.verifier}),
		httpx.RequirePermission(p, countDenied),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerAuth() {
	login := &LoginHandler{AuthService: r.AuthService}
	me := &MeHandler{UserService: r.UserService}

	// Strict limit per IP + username against password guessing.
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(login,
			httpx.RateLimitByIPAndJSONField(r.LoginLimit, r.clientIP(), "username"),
		),
	)

	r.Mux.Handle("GET /api/auth/me",
		r.secured(http.HandlerFunc(me.HandleGet), authz.ViewProfile, httpx.LenientLimit))

	// Verifies the current password, so it gets the strict limit too.
	r.Mux.Handle("PUT /api/auth/me/password",
		r.secured(http.HandlerFunc(me.HandleChangePassword), authz.EditProfile, httpx.StrictLimit))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/users",
		r.secured(http.HandlerFunc(h.HandleList), authz.ViewUsers, httpx.LenientLimit))
	r.Mux.Handle("GET /api/users/{uid}",
		r.secured(http.HandlerFunc(h.HandleGet), authz.ViewUsers, httpx.LenientLimit))
	r.Mux.Handle("POST /api/users",
		r.secured(http.HandlerFunc(h.HandleCreate), authz.CreateUser, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/users/{uid}/role",
		r.secured(http.HandlerFunc(h.HandleChangeRole), authz.EditUser, httpx.ModerateLimit))
	r.Mux.Handle("PUT /api/users/{uid}/active",
		r.secured(http.HandlerFunc(h.HandleSetActive), authz.EditUser, httpx.ModerateLimit))
	r.Mux.Handle("DELETE /api/users/{uid}",
		r.secured(http.HandlerFunc(h.HandleDelete), authz.DeleteUser, httpx.ModerateLimit))
}

func (r *Router) registerAdmin() {
	// Reset destroys every account; it is gated on the strongest permission.
	reset := &ResetHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /api/admin/reset",
		r.secured(reset, authz.DeleteUser, httpx.StrictLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit, r.clientIP()),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.verifier),
			httpx.RateLimitByIP(httpx.LenientLimit, r.clientIP()),
		),
	)
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}

// countingVerifier records every bearer token check.
type countingVerifier struct {
	next jwtx.Verifier
}

func (v countingVerifier) Verify(token string) (jwtx.Claims, error) {
	claims, err := v.next.Verify(token)
	result := "valid"
	if err != nil {
		result = "invalid"
	}
	metrics.TokenValidationsTotal.WithLabelValues(result).Inc()
	return claims, err
}

func countDenied(_ *http.Request, p authz.Permission) {
	metrics.PermissionDeniedTotal.WithLabelValues(p.String()).Inc()
}
