package http

import (
	"errors"
	"net/http"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/domain"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
	"github.com/MrFrey75/AppSimple-sub001/pkg/slogx"
)

// apiError maps a service error to its transport kind. Anything it does not
// recognise is a server error.
func apiError(err error) *authsdk.APIError {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return authsdk.ErrNotFound
	case errors.Is(err, domain.ErrDuplicate):
		return authsdk.ErrDuplicate
	case errors.Is(err, domain.ErrInvalidCredentials):
		return authsdk.ErrInvalidCredentials
	case errors.Is(err, domain.ErrTokenInvalid):
		return authsdk.ErrTokenInvalid
	case errors.Is(err, domain.ErrUnauthorized):
		return authsdk.ErrUnauthorized
	case errors.Is(err, domain.ErrPermissionDenied):
		return authsdk.ErrPermissionDenied
	case errors.Is(err, domain.ErrSystemProtected):
		return authsdk.ErrSystemProtected
	case errors.Is(err, authz.ErrUnknownRole):
		return authsdk.ErrInvalidRequest
	default:
		return authsdk.ErrServerError
	}
}

// writeError writes err as its API error. Server errors are logged in full;
// the client only sees the generic body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := apiError(err)
	if e == authsdk.ErrServerError {
		slogx.LogError(slogx.FromContext(r.Context()), "request failed", err)
	}
	e.WriteError(w)
}
