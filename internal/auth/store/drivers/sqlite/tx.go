package sqlite

import (
	"context"
	"database/sql"
)

// withTx runs fn inside a read/write transaction. If fn returns an error the
// transaction is rolled back, otherwise it is committed.
func withTx(ctx context.Context, db *sql.DB, fn func(tx dbtx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	return tx.Commit()
}
