package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/service"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store/drivers/sqlite"
	"github.com/MrFrey75/AppSimple-sub001/pkg/cryptox"
	"github.com/MrFrey75/AppSimple-sub001/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "0123456789abcdef0123456789abcdef"
	testAdminPassword = "Admin123!"
)

type fixture struct {
	store     *sqlite.Store
	hasher    *cryptox.Hasher
	tokens    *jwtx.HS256
	bootstrap *service.BootstrapService
	auth      *service.AuthService
	users     *service.UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "appsimple.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := jwtx.NewHS256(jwtx.Config{Secret: testSecret})
	require.NoError(t, err)

	hasher := cryptox.NewHasher(cryptox.Params{Memory: 1024, Iterations: 1, Parallelism: 1})

	f := &fixture{
		store:  st,
		hasher: hasher,
		tokens: tokens,
		bootstrap: &service.BootstrapService{
			Store:         st,
			Hasher:        hasher,
			AdminPassword: testAdminPassword,
		},
		auth:  &service.AuthService{Store: st, Hasher: hasher, Tokens: tokens},
		users: &service.UserService{Store: st, Hasher: hasher},
	}
	require.NoError(t, f.bootstrap.Bootstrap(context.Background()))
	return f
}
