//go:build e2e

package appsimple_test

import (
	"testing"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit uses the production limit of 5 attempts per minute per
// address and username.
func TestLoginRateLimit(t *testing.T) {
	client := authsdk.NewSDKClient(setupContainer(t, map[string]string{
		"APPSIMPLE_LOGIN_RATE_LIMIT": "5",
	}))

	for i := range 5 {
		_, err := client.Login(t.Context(), "admin", "wrong-password")
		require.ErrorIs(t, err, authsdk.ErrInvalidCredentials, "attempt %d", i+1)
	}

	_, err := client.Login(t.Context(), "admin", adminPassword)
	require.ErrorIs(t, err, authsdk.ErrRateLimited, "the right password is refused once limited")

	_, err = client.Login(t.Context(), "alice", "wrong-password")
	require.ErrorIs(t, err, authsdk.ErrInvalidCredentials, "other usernames keep their own bucket")
}
