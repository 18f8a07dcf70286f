//go:build e2e

package appsimple_test

import (
	"testing"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	client := authsdk.NewSDKClient(setupContainer(t, nil))

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
