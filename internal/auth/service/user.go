package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/domain"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
	"github.com/MrFrey75/AppSimple-sub001/pkg/idx"
	"github.com/MrFrey75/AppSimple-sub001/pkg/slogx"
	"github.com/samber/oops"
)

type UserService struct {
	Store  store.Store
	Hasher PasswordHasher
}

// NewUser is the input of Create.
type NewUser struct {
	Username string
	Email    string
	Password string
	Role     authz.Role
}

// Get fetches a user by uid.
func (s *UserService) Get(ctx context.Context, uid string) (domain.User, error) {
	u, err := s.Store.Users().GetByUID(ctx, uid)
	if err != nil {
		return domain.User{}, mapStoreErr(err, "get user", uid)
	}
	return u, nil
}

// List returns every account, oldest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.Store.Users().List(ctx)
	if err != nil {
		return nil, oops.Code("USER_LIST_FAILED").Wrap(err)
	}
	return users, nil
}

// Create adds an active, non-system account. Username and email must be
// unique ignoring case.
func (s *UserService) Create(ctx context.Context, in NewUser) (domain.User, error) {
	if !in.Role.Valid() {
		return domain.User{}, authz.ErrUnknownRole
	}

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	users := s.Store.Users()
	if taken, err := users.UsernameExists(ctx, in.Username); err != nil {
		return domain.User{}, oops.Code("USER_CREATE_FAILED").With("operation", "check username").Wrap(err)
	} else if taken {
		return domain.User{}, domain.ErrDuplicate
	}
	if taken, err := users.EmailExists(ctx, in.Email); err != nil {
		return domain.User{}, oops.Code("USER_CREATE_FAILED").With("operation", "check email").Wrap(err)
	} else if taken {
		return domain.User{}, domain.ErrDuplicate
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, oops.Code("USER_CREATE_FAILED").With("operation", "hash password").Wrap(err)
	}

	u := domain.User{
		UID:          idx.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
	}
	// A concurrent create can still win the race; the unique index decides.
	if err := users.Add(ctx, u); err != nil {
		return domain.User{}, mapStoreErr(err, "add user", u.UID)
	}

	created, err := users.GetByUID(ctx, u.UID)
	if err != nil {
		return domain.User{}, mapStoreErr(err, "reload user", u.UID)
	}

	slogx.FromContext(ctx).Info("user created",
		slog.String("uid", created.UID),
		slog.String("username", created.Username),
		slog.String("role", created.Role.String()),
	)
	return created, nil
}

// ChangeRole sets the role of uid. The system administrator cannot be demoted.
func (s *UserService) ChangeRole(ctx context.Context, uid string, role authz.Role) (domain.User, error) {
	if !role.Valid() {
		return domain.User{}, authz.ErrUnknownRole
	}

	return s.modify(ctx, uid, "change role", func(u *domain.User) error {
		if u.Protected() && role != authz.RoleAdmin {
			return domain.ErrSystemProtected
		}
		u.Role = role
		return nil
	})
}

// SetActive enables or disables uid. The system administrator cannot be
// disabled.
func (s *UserService) SetActive(ctx context.Context, uid string, active bool) (domain.User, error) {
	return s.modify(ctx, uid, "set active", func(u *domain.User) error {
		if u.Protected() && !active {
			return domain.ErrSystemProtected
		}
		u.IsActive = active
		return nil
	})
}

// ChangePassword replaces the password of uid after checking the current one.
// A wrong current password is ErrInvalidCredentials.
func (s *UserService) ChangePassword(ctx context.Context, uid, current, next string) error {
	u, err := s.Get(ctx, uid)
	if err != nil {
		return err
	}
	if !s.Hasher.Verify(current, u.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.Hasher.Hash(next)
	if err != nil {
		return oops.Code("PASSWORD_CHANGE_FAILED").With("operation", "hash password").Wrap(err)
	}

	_, err = s.modify(ctx, uid, "change password", func(u *domain.User) error {
		u.PasswordHash = hash
		return nil
	})
	return err
}

// Delete removes uid. The system administrator cannot be deleted.
func (s *UserService) Delete(ctx context.Context, uid string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetByUID(ctx, uid)
		if err != nil {
			return mapStoreErr(err, "get user", uid)
		}
		if u.Protected() {
			return domain.ErrSystemProtected
		}
		if err := tx.Users().Delete(ctx, uid); err != nil {
			return mapStoreErr(err, "delete user", uid)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("user deleted", slog.String("uid", uid))
	return nil
}

// modify runs a read-modify-write of uid in one transaction.
func (s *UserService) modify(ctx context.Context, uid, op string, fn func(*domain.User) error) (domain.User, error) {
	var out domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetByUID(ctx, uid)
		if err != nil {
			return mapStoreErr(err, "get user", uid)
		}
		if err := fn(&u); err != nil {
			return err
		}
		if err := tx.Users().Update(ctx, u); err != nil {
			return mapStoreErr(err, op, uid)
		}
		if out, err = tx.Users().GetByUID(ctx, uid); err != nil {
			return mapStoreErr(err, "reload user", uid)
		}
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user updated", slog.String("uid", uid), slog.String("operation", op))
	return out, nil
}

// mapStoreErr turns the store's explicit signals into domain error kinds and
// wraps anything else as an infrastructure failure.
func mapStoreErr(err error, op, uid string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.ErrNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.ErrDuplicate
	default:
		return oops.Code("USER_STORE_FAILED").With("operation", op).With("uid", uid).Wrap(err)
	}
}
