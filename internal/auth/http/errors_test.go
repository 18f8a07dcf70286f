package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/domain"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want *authsdk.APIError
	}{
		{"not found", domain.ErrNotFound, authsdk.ErrNotFound},
		{"duplicate", domain.ErrDuplicate, authsdk.ErrDuplicate},
		{"invalid credentials", domain.ErrInvalidCredentials, authsdk.ErrInvalidCredentials},
		{"token invalid", domain.ErrTokenInvalid, authsdk.ErrTokenInvalid},
		{"unauthorized", domain.ErrUnauthorized, authsdk.ErrUnauthorized},
		{"permission denied", domain.ErrPermissionDenied, authsdk.ErrPermissionDenied},
		{"system protected", domain.ErrSystemProtected, authsdk.ErrSystemProtected},
		{"unknown role", authz.ErrUnknownRole, authsdk.ErrInvalidRequest},
		{"wrapped kind", oops.Code("USER_STORE_FAILED").Wrap(domain.ErrNotFound), authsdk.ErrNotFound},
		{"infrastructure", oops.Code("USER_STORE_FAILED").Wrap(errors.New("disk I/O error")), authsdk.ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, apiError(tt.err))
		})
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)

	writeError(rec, req, oops.Code("USER_LIST_FAILED").Wrap(errors.New("database is locked: /var/lib/appsimple.db")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "locked")
	assert.Contains(t, rec.Body.String(), authsdk.ErrorCodeServerError)
}
