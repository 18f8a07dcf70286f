package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/domain"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/metrics"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
	"github.com/MrFrey75/AppSimple-sub001/pkg/idx"
	"github.com/MrFrey75/AppSimple-sub001/pkg/slogx"
	"github.com/samber/oops"
)

var (
	ErrAdminPasswordMissing = errors.New("admin password is not configured")
	ErrPasswordHashMissing  = errors.New("password hash is empty")
)

// BootstrapService owns the schema and the seed guarantee: after Bootstrap or
// ResetAndReseed exactly one protected administrator exists.
type BootstrapService struct {
	Store  store.Store
	Hasher PasswordHasher

	// AdminPassword is hashed for the system administrator on first start and
	// on every reset.
	AdminPassword string

	// Seed defaults to DefaultSeed when empty.
	Seed domain.SeedData
}

func (s *BootstrapService) seed() domain.SeedData {
	if s.Seed.AdminEmail == "" && len(s.Seed.Samples) == 0 {
		return DefaultSeed()
	}
	return s.Seed
}

// Initialize applies pending schema migrations. It is safe to call on every
// start; an up-to-date schema is left untouched.
func (s *BootstrapService) Initialize(ctx context.Context) error {
	if err := s.Store.ApplyMigrations(); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "apply migrations").Wrap(err)
	}

	slogx.FromContext(ctx).Debug("schema up to date")
	return nil
}

// SeedAdminUser inserts the protected administrator with passwordHash unless
// an Admin account already exists, in which case it does nothing.
func (s *BootstrapService) SeedAdminUser(ctx context.Context, passwordHash string) error {
	if passwordHash == "" {
		return ErrPasswordHashMissing
	}

	l := slogx.FromContext(ctx)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		admins, err := tx.Users().CountByRole(ctx, authz.RoleAdmin)
		if err != nil {
			return oops.Code("SEED_FAILED").With("operation", "count admins").Wrap(err)
		}
		if admins > 0 {
			l.Debug("admin already present, skipping seed", slog.Int("admins", admins))
			return nil
		}

		admin := s.systemAdmin(passwordHash, time.Now().UTC())
		if err := tx.Users().Add(ctx, admin); err != nil {
			return oops.Code("SEED_FAILED").With("operation", "insert admin").Wrap(err)
		}

		l.Info("seeded system administrator",
			slog.String("uid", admin.UID),
			slog.String("username", admin.Username),
		)
		return nil
	})
	return err
}

// Bootstrap runs Initialize and seeds the administrator on an empty database.
// The admin password is only hashed when a seed is needed.
func (s *BootstrapService) Bootstrap(ctx context.Context) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}

	admins, err := s.Store.Users().CountByRole(ctx, authz.RoleAdmin)
	if err != nil {
		return oops.Code("SEED_FAILED").With("operation", "count admins").Wrap(err)
	}
	if admins > 0 {
		return nil
	}

	hash, err := s.hashAdminPassword()
	if err != nil {
		return err
	}
	return s.SeedAdminUser(ctx, hash)
}

// ResetAndReseed deletes every account and writes the administrator plus the
// sample accounts. The delete and the reseed run in one exclusive transaction,
// so no other connection observes the empty table and concurrent writers wait
// for it to finish. It returns the number of accounts afterwards.
//
// Tokens issued before the reset stay valid until they expire.
func (s *BootstrapService) ResetAndReseed(ctx context.Context) (int, error) {
	l := slogx.FromContext(ctx)
	l.Warn("resetting database, all user accounts will be deleted")

	if err := s.Initialize(ctx); err != nil {
		return 0, err
	}

	// Hashing is slow; do it before taking the lock.
	now := time.Now().UTC()
	seed := s.seed()
	adminHash, err := s.hashAdminPassword()
	if err != nil {
		return 0, err
	}

	accounts := make([]domain.User, 0, len(seed.Samples)+1)
	accounts = append(accounts, s.systemAdmin(adminHash, now))
	for i, acc := range seed.Samples {
		hash, err := s.Hasher.Hash(acc.Password)
		if err != nil {
			return 0, oops.Code("RESET_FAILED").With("operation", "hash sample password").With("username", acc.Username).Wrap(err)
		}
		accounts = append(accounts, domain.User{
			UID:          idx.New(),
			Username:     acc.Username,
			Email:        acc.Email,
			PasswordHash: hash,
			Role:         authz.RoleUser,
			IsActive:     true,
			// Distinct timestamps keep List in seed order.
			CreatedAt: now.Add(time.Duration(i+1) * time.Millisecond),
		})
	}

	var removed int64
	var total int
	err = s.Store.Exclusive(ctx, func(tx store.Tx) error {
		var err error
		if removed, err = tx.Users().DeleteAll(ctx); err != nil {
			return oops.Code("RESET_FAILED").With("operation", "delete users").Wrap(err)
		}

		for _, u := range accounts {
			if err := tx.Users().Add(ctx, u); err != nil {
				return oops.Code("RESET_FAILED").With("operation", "insert user").With("username", u.Username).Wrap(err)
			}
		}

		if total, err = tx.Users().Count(ctx); err != nil {
			return oops.Code("RESET_FAILED").With("operation", "count users").Wrap(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	metrics.ResetsTotal.Inc()
	metrics.UsersTotal.Set(float64(total))
	l.Warn("database reset complete",
		slog.Int64("removed", removed),
		slog.Int("users", total),
	)
	return total, nil
}

func (s *BootstrapService) hashAdminPassword() (string, error) {
	if s.AdminPassword == "" {
		return "", ErrAdminPasswordMissing
	}

	hash, err := s.Hasher.Hash(s.AdminPassword)
	if err != nil {
		return "", oops.Code("SEED_FAILED").With("operation", "hash admin password").Wrap(err)
	}
	return hash, nil
}

func (s *BootstrapService) systemAdmin(passwordHash string, now time.Time) domain.User {
	return domain.User{
		UID:          idx.New(),
		Username:     domain.SystemAdminUsername,
		Email:        s.seed().AdminEmail,
		PasswordHash: passwordHash,
		Role:         authz.RoleAdmin,
		IsActive:     true,
		IsSystem:     true,
		CreatedAt:    now,
	}
}
