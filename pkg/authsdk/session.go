package authsdk

import (
	"errors"
	"sync"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
)

// Principal is the authenticated identity a Session holds.
type Principal struct {
	UID      string
	Username string
	Email    string
	Role     authz.Role
}

// Session holds the principal and bearer token for the current login of one
// client process. It is created explicitly by the application and is never
// persisted. Permission checks go through the shared authz table, so client
// gating and server enforcement cannot drift apart.
type Session struct {
	client *SDKClient

	mu    sync.RWMutex
	user  *Principal
	token string
}

// NewSession returns a logged-out session. client may be nil when the session
// is only used as a holder.
func NewSession(client *SDKClient) *Session {
	return &Session{client: client}
}

// Login stores the principal and token, replacing any previous login.
func (s *Session) Login(user Principal, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.token = token
}

// Logout clears the principal and token.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
}

// IsLoggedIn reports whether both a principal and a token are held.
func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// CurrentUser returns the held principal, if any.
func (s *Session) CurrentUser() (Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return Principal{}, false
	}
	return *s.user, true
}

// Token returns the held bearer token, if any.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// HasPermission is false when logged out; otherwise it asks the authz table.
func (s *Session) HasPermission(p authz.Permission) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil || s.token == "" {
		return false
	}
	return authz.Grants(s.user.Role, p)
}

// checkPermission gates an operation before any request is sent.
func (s *Session) checkPermission(p authz.Permission) error {
	if !s.IsLoggedIn() {
		return ErrNotLoggedIn
	}
	if !s.HasPermission(p) {
		return ErrPermissionDenied
	}
	return nil
}

// observe ends the login when the server says the token is no longer good.
// Tokens are not refreshed; the user has to log in again.
func (s *Session) observe(err error) error {
	if errors.Is(err, ErrTokenInvalid) {
		s.Logout()
	}
	return err
}
