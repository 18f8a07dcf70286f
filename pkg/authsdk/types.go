package authsdk

import (
	"time"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
)

// ============================================================================
// Error Payloads
// ============================================================================

// ErrorResponse is the body of every non-validation error returned by the API.
type ErrorResponse struct {
	// Error is the machine-readable code (e.g., "invalid_credentials", "not_found")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned with 400 when a request body fails
// field validation.
type ValidationErrorResponse struct {
	// Code is always "validation_error"
	Code string `json:"code"`

	Message string `json:"message"`

	// Details maps the JSON field name to what is wrong with it
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Authentication
// ============================================================================

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on a successful login. The same failure body is
// returned whether the username is unknown or the password is wrong.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ChangePasswordRequest is the body of PUT /api/auth/me/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=128"`
}

// ============================================================================
// Users
// ============================================================================

// UserResponse is the public view of a user account. The password hash is
// never serialized.
type UserResponse struct {
	UID       string    `json:"uid"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	IsSystem  bool      `json:"is_system"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Principal converts the response into the identity a Session holds.
func (u UserResponse) Principal() (Principal, error) {
	role, err := authz.ParseRole(u.Role)
	if err != nil {
		return Principal{}, err
	}
	return Principal{
		UID:      u.UID,
		Username: u.Username,
		Email:    u.Email,
		Role:     role,
	}, nil
}

// ListUsersResponse is returned from GET /api/users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

// CreateUserRequest is the body of POST /api/users. Role defaults to "User".
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64,alphanum"`
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role"     validate:"omitempty,oneof=Admin User admin user"`
}

// ChangeRoleRequest is the body of PUT /api/users/{uid}/role.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=Admin User admin user"`
}

// SetActiveRequest is the body of PUT /api/users/{uid}/active.
type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// ============================================================================
// Administration
// ============================================================================

// ResetResponse is returned from POST /api/admin/reset.
type ResetResponse struct {
	// Users is the number of accounts present after the reset
	Users int `json:"users"`

	// Warning reminds the caller that tokens issued before the reset stay
	// valid until they expire
	Warning string `json:"warning"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
