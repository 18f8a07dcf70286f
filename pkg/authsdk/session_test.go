package authsdk_test

import (
	"testing"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
	"github.com/stretchr/testify/require"
)

var (
	adminPrincipal = authsdk.Principal{UID: "u-admin", Username: "admin", Email: "admin@appsimple.local", Role: authz.RoleAdmin}
	userPrincipal  = authsdk.Principal{UID: "u-jane", Username: "jane", Email: "jane@appsimple.local", Role: authz.RoleUser}
)

func TestSession_LoggedOut(t *testing.T) {
	s := authsdk.NewSession(nil)

	require.False(t, s.IsLoggedIn())

	_, ok := s.CurrentUser()
	require.False(t, ok)

	_, ok = s.Token()
	require.False(t, ok)

	for _, p := range authz.AllPermissions() {
		require.False(t, s.HasPermission(p), p.String())
	}
}

func TestSession_LoginLogout(t *testing.T) {
	s := authsdk.NewSession(nil)

	s.Login(adminPrincipal, "tok")
	require.True(t, s.IsLoggedIn())

	u, ok := s.CurrentUser()
	require.True(t, ok)
	require.Equal(t, adminPrincipal, u)

	tok, ok := s.Token()
	require.True(t, ok)
	require.Equal(t, "tok", tok)

	s.Logout()
	require.False(t, s.IsLoggedIn())
	require.False(t, s.HasPermission(authz.ViewProfile))
}

func TestSession_EmptyTokenIsNotLoggedIn(t *testing.T) {
	s := authsdk.NewSession(nil)
	s.Login(adminPrincipal, "")

	require.False(t, s.IsLoggedIn())
	require.False(t, s.HasPermission(authz.DeleteUser))
}

func TestSession_HasPermissionDelegatesToTable(t *testing.T) {
	tests := []struct {
		name      string
		principal authsdk.Principal
	}{
		{"admin", adminPrincipal},
		{"user", userPrincipal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := authsdk.NewSession(nil)
			s.Login(tt.principal, "tok")

			for _, p := range authz.AllPermissions() {
				require.Equal(t, authz.Grants(tt.principal.Role, p), s.HasPermission(p), p.String())
			}
			require.False(t, s.HasPermission(authz.Permission(999)))
		})
	}
}

func TestSession_LoginReplacesPrevious(t *testing.T) {
	s := authsdk.NewSession(nil)
	s.Login(adminPrincipal, "first")
	s.Login(userPrincipal, "second")

	u, _ := s.CurrentUser()
	require.Equal(t, "jane", u.Username)
	require.False(t, s.HasPermission(authz.DeleteUser))

	tok, _ := s.Token()
	require.Equal(t, "second", tok)
}
