package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/internal/auth/store"
	"github.com/aussiebroadwan/familytree/pkg/cryptox"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// timeFormat is fixed width so stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// dbtx is satisfied by both *sql.DB and *sql.Tx so repos can run inside or
// outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

var _ store.Store = (*Store)(nil)

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Every connection to :memory: is its own database.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Clients() store.Clients { return &clientsRepo{db: s.db, root: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns primary key and unique violations into
// store.ErrAlreadyExists.
func mapConstraint(err error) error {
	var serr *moderncsqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return store.ErrAlreadyExists
		}
	}
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeFormat, s)
}

type clientRow struct {
	ID         string
	Name       string
	SecretSalt string
	SecretHash string
	OwnerID    string
	Scopes     string
	CreatedAt  string
	UpdatedAt  string
}

func (r *clientRow) scanFrom(sc interface{ Scan(...any) error }) error {
	return sc.Scan(
		&r.ID,
		&r.Name,
		&r.SecretSalt,
		&r.SecretHash,
		&r.OwnerID,
		&r.Scopes,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
}

func mapClient(row clientRow) (domain.Client, error) {
	created, err := parseTime(row.CreatedAt)
	if err != nil {
		return domain.Client{}, err
	}
	updated, err := parseTime(row.UpdatedAt)
	if err != nil {
		return domain.Client{}, err
	}
	return domain.Client{
		ID:        domain.ClientID(row.ID),
		Name:      row.Name,
		Secret:    cryptox.Password{Salt: row.SecretSalt, Hash: row.SecretHash},
		Owner:     domain.UserID(row.OwnerID),
		Scopes:    domain.ParseScopes(row.Scopes),
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}
