package authsdk

import (
	"context"
	"net/http"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
)

// User operations - available to every logged-in account

// Me retrieves the profile of the logged-in user.
// Requires: ViewProfile
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/auth/me", nil, authz.ViewProfile)
	if err != nil {
		return nil, err
	}

	var me UserResponse
	if err := decodeJSON(resp, &me, http.StatusOK); err != nil {
		return nil, s.observe(err)
	}

	return &me, nil
}

// ChangePassword replaces the logged-in user's password.
// Requires: EditProfile
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	req := ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/api/auth/me/password", req, authz.EditProfile)
	if err != nil {
		return err
	}

	return s.observe(checkStatusNoContent(resp))
}
