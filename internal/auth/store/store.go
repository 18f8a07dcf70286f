package store

import (
	"context"
	"errors"

	"golang.org/x/text/cases"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/domain"
	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
)

// Absence and uniqueness violations are ordinary outcomes, reported as these
// values rather than driver errors.
var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// FoldKey is the form usernames and emails are compared in. Unicode case
// folding, so "Émile" and "émile" collide.
func FoldKey(s string) string {
	return cases.Fold().String(s)
}

// Store is the root data access interface. Concrete drivers implement this.
// Sub-repositories are exposed as methods so a Tx cannot open another Tx.
type Store interface {
	Users() Users

	// ApplyMigrations brings the schema up to date. Calling it on an
	// up-to-date database is a no-op.
	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. It commits when fn returns
	// nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Exclusive is WithTx holding a whole-database write lock, so no other
	// connection can read or write until fn returns.
	Exclusive(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the account repository. Lookups return ErrNotFound for a missing
// row; username and email comparisons are case-insensitive.
type Users interface {
	GetByUID(ctx context.Context, uid string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	// Add inserts u. It returns ErrAlreadyExists on a username or email clash.
	Add(ctx context.Context, u domain.User) error

	// Update writes every mutable column of u and bumps updated_at.
	Update(ctx context.Context, u domain.User) error

	Delete(ctx context.Context, uid string) error

	// List returns every user ordered by creation time.
	List(ctx context.Context) ([]domain.User, error)

	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role authz.Role) (int, error)

	// DeleteAll removes every user row and reports how many went.
	DeleteAll(ctx context.Context) (int64, error)
}
