package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/internal/auth/store"
)

const clientColumns = `id, name, secret_salt, secret_hash, owner_id, scopes, created_at, updated_at`

const (
	getClientByID = `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`

	listClients = `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC, id DESC`

	createClient = `INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	upsertClient = `INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	secret_salt = excluded.secret_salt,
	secret_hash = excluded.secret_hash,
	owner_id = excluded.owner_id,
	scopes = excluded.scopes,
	created_at = excluded.created_at,
	updated_at = excluded.updated_at`

	deleteClient = `DELETE FROM clients WHERE id = ?`

	countClients = `SELECT COUNT(*) FROM clients`
)

type clientsRepo struct {
	db   dbtx
	root *sql.DB
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id domain.ClientID) (domain.Client, error) {
	var row clientRow
	if err := row.scanFrom(r.db.QueryRowContext(ctx, getClientByID, string(id))); err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return mapClient(row)
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, listClients)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var clients []domain.Client
	for rows.Next() {
		var row clientRow
		if err := row.scanFrom(rows); err != nil {
			return nil, err
		}
		c, err := mapClient(row)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	_, err := r.db.ExecContext(ctx, createClient, clientArgs(c)...)
	return mapConstraint(err)
}

func (r *clientsRepo) UpsertClients(ctx context.Context, clients ...domain.Client) error {
	if len(clients) == 0 {
		return nil
	}
	return withTx(ctx, r.root, func(tx dbtx) error {
		for _, c := range clients {
			if _, err := tx.ExecContext(ctx, upsertClient, clientArgs(c)...); err != nil {
				return fmt.Errorf("upsert client %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

func (r *clientsRepo) DeleteClient(ctx context.Context, id domain.ClientID) error {
	res, err := r.db.ExecContext(ctx, deleteClient, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *clientsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, countClients).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func clientArgs(c domain.Client) []any {
	return []any{
		string(c.ID),
		c.Name,
		c.Secret.Salt,
		c.Secret.Hash,
		string(c.Owner),
		c.Scopes.String(),
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	}
}
