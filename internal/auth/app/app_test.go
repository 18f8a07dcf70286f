package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authsdk"
	"github.com/MrFrey75/AppSimple-sub001/pkg/httpx"
	"github.com/MrFrey75/AppSimple-sub001/pkg/jwtx"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func loadConfig(t *testing.T, env map[string]string) Config {
	t.Helper()
	cfg, err := LoadConfigFrom(context.Background(), envconfig.MapLookuper(env))
	require.NoError(t, err)
	return cfg
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := loadConfig(t, map[string]string{"APPSIMPLE_JWT_SECRET": testSecret})

	assert.Equal(t, "appsimple.db", cfg.DatabaseFile)
	assert.Equal(t, "Admin123!", cfg.AdminPassword)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.TrustProxy)
	require.NoError(t, cfg.Validate())

	tc := cfg.TokenConfig()
	assert.Equal(t, "AppSimple", tc.Issuer)
	assert.Equal(t, "AppSimple", tc.Audience)
	assert.Equal(t, 60*time.Minute, tc.Lifetime)

	assert.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}, cfg.LoginLimit())
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"APPSIMPLE_JWT_SECRET":             testSecret,
		"APPSIMPLE_JWT_ISSUER":             "issuer-x",
		"APPSIMPLE_JWT_EXPIRATION_MINUTES": "-5",
		"APPSIMPLE_DATABASE_FILE":          "/data/app.db",
		"APPSIMPLE_LOGIN_RATE_LIMIT":       "0",
		"APPSIMPLE_TRUST_PROXY":            "true",
		"PORT":                             "9090",
	})

	assert.Equal(t, "issuer-x", cfg.TokenConfig().Issuer)
	assert.Equal(t, -5*time.Minute, cfg.TokenConfig().Lifetime)
	assert.Equal(t, "/data/app.db", cfg.DatabaseFile)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, httpx.StrictLimit, cfg.LoginLimit())
}

func TestLoadConfig_BadValue(t *testing.T) {
	_, err := LoadConfigFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"APPSIMPLE_JWT_EXPIRATION_MINUTES": "sixty",
	}))
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		wantErr error
	}{
		{"missing", "", jwtx.ErrSecretMissing},
		{"too short", "short-secret", jwtx.ErrSecretTooShort},
		{"ok", testSecret, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadConfig(t, map[string]string{"APPSIMPLE_JWT_SECRET": tt.secret})
			err := cfg.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNew_RejectsMissingSecretBeforeOpeningDatabase(t *testing.T) {
	dbFile := filepath.Join(t.TempDir(), "appsimple.db")
	cfg := loadConfig(t, map[string]string{"APPSIMPLE_DATABASE_FILE": dbFile})

	_, err := New(cfg)
	require.ErrorIs(t, err, jwtx.ErrSecretMissing)

	_, statErr := os.Stat(dbFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNew_ServesLogin(t *testing.T) {
	cfg := loadConfig(t, map[string]string{
		"APPSIMPLE_JWT_SECRET":    testSecret,
		"APPSIMPLE_DATABASE_FILE": filepath.Join(t.TempDir(), "appsimple.db"),
		"LOG_LEVEL":               "error",
	})

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	body, err := json.Marshal(authsdk.LoginRequest{Username: "admin", Password: "Admin123!"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp authsdk.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Admin", resp.Role)
	assert.True(t, application.tokens.IsTokenValid(resp.Token))
}
