package authsdk

import (
	"context"
	"net/http"
	"net/url"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
)

// Admin operations - gated on the admin permissions of the authz table

// ListUsers retrieves every user account.
// Requires: ViewUsers
func (s *Session) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/users", nil, authz.ViewUsers)
	if err != nil {
		return nil, err
	}

	var users ListUsersResponse
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, s.observe(err)
	}

	return &users, nil
}

// GetUser retrieves one account by uid.
// Requires: ViewUsers
func (s *Session) GetUser(ctx context.Context, uid string) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/users/"+url.PathEscape(uid), nil, authz.ViewUsers)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, s.observe(err)
	}

	return &user, nil
}

// CreateUser creates an account.
// Requires: CreateUser
func (s *Session) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/users", req, authz.CreateUser)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, s.observe(err)
	}

	return &user, nil
}

// ChangeRole sets the role of an account. The system administrator cannot be
// demoted.
// Requires: EditUser
func (s *Session) ChangeRole(ctx context.Context, uid string, role authz.Role) (*UserResponse, error) {
	path := "/api/users/" + url.PathEscape(uid) + "/role"
	resp, err := s.doAuthRequest(ctx, http.MethodPut, path, ChangeRoleRequest{Role: role.String()}, authz.EditUser)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, s.observe(err)
	}

	return &user, nil
}

// SetActive enables or disables an account.
// Requires: EditUser
func (s *Session) SetActive(ctx context.Context, uid string, active bool) (*UserResponse, error) {
	path := "/api/users/" + url.PathEscape(uid) + "/active"
	resp, err := s.doAuthRequest(ctx, http.MethodPut, path, SetActiveRequest{Active: &active}, authz.EditUser)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, s.observe(err)
	}

	return &user, nil
}

// DeleteUser removes an account.
// Requires: DeleteUser
func (s *Session) DeleteUser(ctx context.Context, uid string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(uid), nil, authz.DeleteUser)
	if err != nil {
		return err
	}

	return s.observe(checkStatusNoContent(resp))
}

// ResetDatabase wipes every account and reseeds the administrator and the
// sample users. Tokens already issued, including this session's, stay valid
// until they expire.
// Requires: DeleteUser
func (s *Session) ResetDatabase(ctx context.Context) (*ResetResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/admin/reset", nil, authz.DeleteUser)
	if err != nil {
		return nil, err
	}

	var reset ResetResponse
	if err := decodeJSON(resp, &reset, http.StatusOK); err != nil {
		return nil, s.observe(err)
	}

	return &reset, nil
}
