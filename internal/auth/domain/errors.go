package domain

import "errors"

// Error kinds shared by the services and mapped to transport responses at the
// HTTP boundary. Check them with errors.Is.
var (
	// ErrInvalidCredentials is the single login failure. Unknown user, wrong
	// password and inactive account are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenInvalid covers every token failure, expiry included.
	ErrTokenInvalid = errors.New("token invalid")

	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("entity not found")

	// ErrDuplicate is a uniqueness violation on username or email.
	ErrDuplicate = errors.New("duplicate entity")

	// ErrSystemProtected rejects changes to the system administrator.
	ErrSystemProtected = errors.New("system entity protected")

	ErrUnauthorized = errors.New("unauthorized")
)
