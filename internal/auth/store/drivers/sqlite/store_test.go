package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/domain"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store/drivers/sqlite"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	return newTestStoreAt(t, filepath.Join(t.TempDir(), "test.db"))
}

func newTestStoreAt(t *testing.T, path string) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func testUser(uid, username, email string) domain.User {
	return domain.User{
		UID:          uid,
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		Role:         authz.RoleUser,
		IsActive:     true,
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	st := newTestStore(t)

	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.ApplyMigrations())

	n, err := st.Users().Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestMemoryDSN(t *testing.T) {
	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Users().Add(context.Background(), testUser("u1", "alice", "alice@example.com")))

	n, err := st.Users().Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestUsers_AddAndGet(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	users := st.Users()

	u := testUser("u1", "Alice", "Alice@Example.com")
	u.Role = authz.RoleAdmin
	u.IsSystem = true
	require.NoError(t, users.Add(ctx, u))

	got, err := users.GetByUID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Username)
	require.Equal(t, "Alice@Example.com", got.Email)
	require.Equal(t, authz.RoleAdmin, got.Role)
	require.True(t, got.IsActive)
	require.True(t, got.IsSystem)
	require.False(t, got.CreatedAt.IsZero())

	t.Run("username lookup is case-insensitive", func(t *testing.T) {
		got, err := users.GetByUsername(ctx, "aLiCe")
		require.NoError(t, err)
		require.Equal(t, "u1", got.UID)
	})

	t.Run("exists checks are case-insensitive", func(t *testing.T) {
		ok, err := users.UsernameExists(ctx, "ALICE")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = users.EmailExists(ctx, "alice@example.COM")
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = users.UsernameExists(ctx, "bob")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("lookups fold non-ASCII case", func(t *testing.T) {
		require.NoError(t, users.Add(ctx, testUser("u2", "Émile", "Émile@example.com")))

		got, err := users.GetByUsername(ctx, "émile")
		require.NoError(t, err)
		require.Equal(t, "u2", got.UID)
		require.Equal(t, "Émile", got.Username)

		ok, err := users.EmailExists(ctx, "ÉMILE@EXAMPLE.COM")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("missing rows are ErrNotFound", func(t *testing.T) {
		_, err := users.GetByUID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = users.GetByUsername(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUsers_AddDuplicate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	users := st.Users()

	require.NoError(t, users.Add(ctx, testUser("u1", "alice", "alice@example.com")))
	require.NoError(t, users.Add(ctx, testUser("u2", "émile", "émile@example.com")))

	tests := []struct {
		name string
		user domain.User
	}{
		{"same uid", testUser("u1", "other", "other@example.com")},
		{"username differs only in case", testUser("u6", "ALICE", "x@example.com")},
		{"email differs only in case", testUser("u3", "bob", "ALICE@example.com")},
		{"non-ASCII username differs only in case", testUser("u4", "ÉMILE", "e4@example.com")},
		{"non-ASCII email differs only in case", testUser("u5", "zoe", "ÉMILE@example.com")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, users.Add(ctx, tt.user), store.ErrAlreadyExists)
		})
	}
}

func TestUsers_SingleSystemRow(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first := testUser("u1", "admin", "admin@example.com")
	first.IsSystem = true
	require.NoError(t, st.Users().Add(ctx, first))

	second := testUser("u2", "admin2", "admin2@example.com")
	second.IsSystem = true
	require.ErrorIs(t, st.Users().Add(ctx, second), store.ErrAlreadyExists)
}

func TestUsers_UpdateAndDelete(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	users := st.Users()

	u := testUser("u1", "alice", "alice@example.com")
	require.NoError(t, users.Add(ctx, u))
	before, err := users.GetByUID(ctx, "u1")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	u.Role = authz.RoleAdmin
	u.IsActive = false
	require.NoError(t, users.Update(ctx, u))

	after, err := users.GetByUID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, authz.RoleAdmin, after.Role)
	require.False(t, after.IsActive)
	require.True(t, after.UpdatedAt.After(before.UpdatedAt))

	require.ErrorIs(t, users.Update(ctx, testUser("ghost", "g", "g@example.com")), store.ErrNotFound)

	require.NoError(t, users.Delete(ctx, "u1"))
	require.ErrorIs(t, users.Delete(ctx, "u1"), store.ErrNotFound)
}

func TestUsers_ListCountDeleteAll(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	users := st.Users()

	base := time.Now().UTC()
	for i, name := range []string{"carol", "alice", "bob"} {
		u := testUser("u-"+name, name, name+"@example.com")
		u.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if name == "alice" {
			u.Role = authz.RoleAdmin
		}
		require.NoError(t, users.Add(ctx, u))
	}

	list, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, []string{"carol", "alice", "bob"}, []string{list[0].Username, list[1].Username, list[2].Username})

	admins, err := users.CountByRole(ctx, authz.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, 1, admins)

	n, err := users.DeleteAll(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	count, err := users.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().Add(ctx, testUser("u1", "alice", "alice@example.com")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	n, err := st.Users().Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	st := newTestStoreAt(t, path)
	ctx := context.Background()

	t.Run("commits", func(t *testing.T) {
		err := st.Exclusive(ctx, func(tx store.Tx) error {
			return tx.Users().Add(ctx, testUser("u1", "alice", "alice@example.com"))
		})
		require.NoError(t, err)

		n, err := st.Users().Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("rolls back", func(t *testing.T) {
		boom := errors.New("boom")
		err := st.Exclusive(ctx, func(tx store.Tx) error {
			_, err := tx.Users().DeleteAll(ctx)
			require.NoError(t, err)
			return boom
		})
		require.ErrorIs(t, err, boom)

		n, err := st.Users().Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("blocks other connections", func(t *testing.T) {
		// Same file, separate pool, short busy wait.
		other, err := sqlite.NewStore("file:" + path + "?_pragma=busy_timeout(100)")
		require.NoError(t, err)
		t.Cleanup(func() { _ = other.Close() })

		err = st.Exclusive(ctx, func(tx store.Tx) error {
			readCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
			defer cancel()

			_, err := other.Users().Count(readCtx)
			require.Error(t, err, "read must not complete while the exclusive lock is held")
			return nil
		})
		require.NoError(t, err)

		n, err := other.Users().Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("gives up when ctx expires", func(t *testing.T) {
		other := newTestStoreAt(t, path)

		locked := make(chan struct{})
		release := make(chan struct{})
		done := make(chan error, 1)
		go func() {
			done <- st.Exclusive(ctx, func(store.Tx) error {
				close(locked)
				<-release
				return nil
			})
		}()
		<-locked

		waitCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
		defer cancel()

		start := time.Now()
		err := other.Exclusive(waitCtx, func(store.Tx) error { return nil })
		elapsed := time.Since(start)

		close(release)
		require.NoError(t, <-done)

		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.Less(t, elapsed, 2*time.Second)

		// The lock is free again.
		require.NoError(t, other.Exclusive(ctx, func(store.Tx) error { return nil }))
	})

	t.Run("no nesting", func(t *testing.T) {
		err := st.Exclusive(ctx, func(tx store.Tx) error {
			return tx.Exclusive(ctx, func(store.Tx) error { return nil })
		})
		require.Error(t, err)
	})
}
