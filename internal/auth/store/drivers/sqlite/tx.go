package sqlite

import (
	"context"
	"database/sql"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store/drivers/sqlite/gen"
)

// txStore is a Store scoped to one transaction, either a *sql.Tx or a raw
// BEGIN EXCLUSIVE on a dedicated connection.
type txStore struct {
	q        *gen.Queries
	commit   func() error
	rollback func() error
	done     bool
}

func newTx(q *gen.Queries, commit, rollback func() error) *txStore {
	return &txStore{q: q, commit: commit, rollback: rollback}
}

func (t *txStore) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	return t.commit()
}

func (t *txStore) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	return t.rollback()
}

func (t *txStore) Close() error { return nil } // nothing to close; caller will commit/rollback and outer DB stays open

// Ping is a no-op for transactions. The connection is already established
// when the transaction is created, so we just return nil.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Exclusive(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users { return &usersRepo{q: t.q} }

func (t *txStore) ApplyMigrations() error { return nil } // no-op; migrations should be applied before starting a tx
