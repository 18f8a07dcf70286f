package authz_test

import (
	"testing"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
	"github.com/stretchr/testify/require"
)

func TestGrants_UserRole(t *testing.T) {
	tests := []struct {
		perm authz.Permission
		want bool
	}{
		{authz.ViewProfile, true},
		{authz.EditProfile, true},
		{authz.ViewUsers, false},
		{authz.CreateUser, false},
		{authz.EditUser, false},
		{authz.DeleteUser, false},
		{authz.Permission(0), false},
		{authz.Permission(999), false},
		{authz.Permission(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.perm.String(), func(t *testing.T) {
			require.Equal(t, tt.want, authz.Grants(authz.RoleUser, tt.perm))
		})
	}
}

func TestGrants_AdminRole(t *testing.T) {
	for _, p := range authz.AllPermissions() {
		t.Run(p.String(), func(t *testing.T) {
			require.True(t, authz.Grants(authz.RoleAdmin, p))
		})
	}

	t.Run("out of range code", func(t *testing.T) {
		require.False(t, authz.Grants(authz.RoleAdmin, authz.Permission(999)))
	})
}

func TestGrants_UnknownRoleDenied(t *testing.T) {
	for _, p := range authz.AllPermissions() {
		require.False(t, authz.Grants(authz.Role(42), p))
	}
}

func TestPermissionCodesAreStable(t *testing.T) {
	require.Equal(t, 1, int(authz.ViewProfile))
	require.Equal(t, 2, int(authz.EditProfile))
	require.Equal(t, 3, int(authz.ViewUsers))
	require.Equal(t, 4, int(authz.CreateUser))
	require.Equal(t, 5, int(authz.EditUser))
	require.Equal(t, 6, int(authz.DeleteUser))
	require.Len(t, authz.AllPermissions(), 6)
}

func TestPermissionsFor(t *testing.T) {
	require.Equal(t,
		[]authz.Permission{authz.ViewProfile, authz.EditProfile},
		authz.PermissionsFor(authz.RoleUser),
	)
	require.Equal(t, authz.AllPermissions(), authz.PermissionsFor(authz.RoleAdmin))
	require.Empty(t, authz.PermissionsFor(authz.Role(7)))
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    authz.Role
		wantErr bool
	}{
		{"Admin", authz.RoleAdmin, false},
		{"admin", authz.RoleAdmin, false},
		{" USER ", authz.RoleUser, false},
		{"User", authz.RoleUser, false},
		{"", 0, true},
		{"root", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := authz.ParseRole(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, authz.ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRoleString(t *testing.T) {
	require.Equal(t, "Admin", authz.RoleAdmin.String())
	require.Equal(t, "User", authz.RoleUser.String())
	require.Equal(t, "Role(9)", authz.Role(9).String())
	require.True(t, authz.RoleAdmin.Valid())
	require.False(t, authz.Role(9).Valid())
}
