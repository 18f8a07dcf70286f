package sqlite

import (
	"context"
	"time"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/domain"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store/drivers/sqlite/gen"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetByUID(ctx context.Context, uid string) (domain.User, error) {
	row, err := r.q.GetUserByUID(ctx, uid)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, store.FoldKey(username))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	n, err := r.q.CountUsersByUsername(ctx, store.FoldKey(username))
	return n > 0, err
}

func (r *usersRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := r.q.CountUsersByEmail(ctx, store.FoldKey(email))
	return n > 0, err
}

func (r *usersRepo) Add(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	return mapWriteErr(r.q.CreateUser(ctx, gen.CreateUserParams{
		Uid:          u.UID,
		Username:     u.Username,
		UsernameKey:  store.FoldKey(u.Username),
		Email:        u.Email,
		EmailKey:     store.FoldKey(u.Email),
		PasswordHash: u.PasswordHash,
		Role:         int64(u.Role),
		IsActive:     u.IsActive,
		IsSystem:     u.IsSystem,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}))
}

func (r *usersRepo) Update(ctx context.Context, u domain.User) error {
	n, err := r.q.UpdateUser(ctx, gen.UpdateUserParams{
		Username:     u.Username,
		UsernameKey:  store.FoldKey(u.Username),
		Email:        u.Email,
		EmailKey:     store.FoldKey(u.Email),
		PasswordHash: u.PasswordHash,
		Role:         int64(u.Role),
		IsActive:     u.IsActive,
		UpdatedAt:    time.Now().UTC(),
		Uid:          u.UID,
	})
	if err != nil {
		return mapWriteErr(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) Delete(ctx context.Context, uid string) error {
	n, err := r.q.DeleteUser(ctx, uid)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, mapUser(row))
	}
	return users, nil
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	n, err := r.q.CountUsers(ctx)
	return int(n), err
}

func (r *usersRepo) CountByRole(ctx context.Context, role authz.Role) (int, error) {
	n, err := r.q.CountUsersByRole(ctx, int64(role))
	return int(n), err
}

func (r *usersRepo) DeleteAll(ctx context.Context) (int64, error) {
	return r.q.DeleteAllUsers(ctx)
}
