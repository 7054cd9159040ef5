package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/internal/auth/store"
	"github.com/aussiebroadwan/familytree/pkg/cryptox"
	"github.com/aussiebroadwan/familytree/pkg/idx"
	"github.com/aussiebroadwan/familytree/pkg/slogx"
)

type ClientService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *ClientService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Load returns the client registered under id, or ErrClientNotFound.
func (s *ClientService) Load(ctx context.Context, id domain.ClientID) (domain.Client, error) {
	client, err := s.Store.Clients().GetClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		return domain.Client{}, err
	}
	return client, nil
}

// Authenticate loads the client and checks the presented secret. Unknown ids
// and wrong secrets both come back as ErrInvalidClient; only the log says
// which.
func (s *ClientService) Authenticate(ctx context.Context, creds domain.ClientCredentials) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	client, err := s.Load(ctx, creds.ID)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			l.Info("client authentication failed", slog.String("client_id", string(creds.ID)), slog.String("reason", "unknown_client"))
			return domain.Client{}, ErrInvalidClient
		}
		return domain.Client{}, err
	}

	if !client.Secret.Verify(creds.Secret) {
		l.Info("client authentication failed", slog.String("client_id", string(creds.ID)), slog.String("reason", "secret_mismatch"))
		return domain.Client{}, ErrInvalidClient
	}

	return client, nil
}

// CreateClient registers a new client with a generated id and secret. The
// plaintext secret is returned once and never stored.
func (s *ClientService) CreateClient(
	ctx context.Context,
	name string,
	owner domain.UserID,
	scopes domain.Scopes,
) (domain.Client, string, error) {
	l := slogx.FromContext(ctx)

	plaintext, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		l.Error("failed to generate client secret", "error", err)
		return domain.Client{}, "", err
	}

	secret, err := cryptox.HashSecret(plaintext)
	if err != nil {
		l.Error("failed to hash client secret", "error", err)
		return domain.Client{}, "", err
	}

	now := s.now().UTC()
	client := domain.Client{
		ID:        domain.ClientID(idx.NewAt(now).String()),
		Name:      name,
		Secret:    secret,
		Owner:     owner,
		Scopes:    scopes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if client.Name == "" {
		client.Name = string(client.ID)
	}

	if err := s.Store.Clients().CreateClient(ctx, client); err != nil {
		l.Error("failed to create client", "error", err)
		return domain.Client{}, "", err
	}

	l.Info("client created successfully", "client_id", client.ID, "name", client.Name, "scopes", client.Scopes.String())
	return client, plaintext, nil
}

// IsEmpty reports whether no client is registered at all.
func (s *ClientService) IsEmpty(ctx context.Context) (bool, error) {
	return s.Store.Clients().IsEmpty(ctx)
}

// ListClients returns all clients, newest first.
func (s *ClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.Store.Clients().ListClients(ctx)
}

func (s *ClientService) DeleteClient(ctx context.Context, id domain.ClientID) error {
	l := slogx.FromContext(ctx)

	if err := s.Store.Clients().DeleteClient(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrClientNotFound
		}
		l.Error("failed to delete client", "error", err, "client_id", id)
		return err
	}

	l.Info("client deleted successfully", "client_id", id)
	return nil
}

// SyncResult counts what ApplyDefinitions did.
type SyncResult struct {
	Created   int
	Updated   int
	Unchanged int
}

// ApplyDefinitions writes externally defined clients into the store in one
// batch. A plaintext secret that still verifies against the stored record
// keeps the stored salt and hash. Clients missing from defs are left alone.
func (s *ClientService) ApplyDefinitions(ctx context.Context, defs []domain.ClientDefinition) (SyncResult, error) {
	var (
		res   SyncResult
		batch []domain.Client
		now   = s.now().UTC()
	)

	for _, def := range defs {
		existing, err := s.Load(ctx, def.ID)
		found := err == nil
		if err != nil && !errors.Is(err, ErrClientNotFound) {
			return SyncResult{}, err
		}

		secret := def.Secret
		if def.PlainSecret != "" {
			if found && existing.Secret.Verify(def.PlainSecret) {
				secret = existing.Secret
			} else if secret, err = cryptox.HashSecret(def.PlainSecret); err != nil {
				return SyncResult{}, err
			}
		}

		next := domain.Client{
			ID:        def.ID,
			Name:      def.Name,
			Secret:    secret,
			Owner:     def.Owner,
			Scopes:    def.Scopes,
			CreatedAt: now,
			UpdatedAt: now,
		}

		switch {
		case !found:
			res.Created++
		case sameDefinition(existing, next):
			res.Unchanged++
			continue
		default:
			next.CreatedAt = existing.CreatedAt
			res.Updated++
		}
		batch = append(batch, next)
	}

	if len(batch) == 0 {
		return res, nil
	}
	if err := s.Store.Clients().UpsertClients(ctx, batch...); err != nil {
		return SyncResult{}, err
	}
	return res, nil
}

func sameDefinition(a, b domain.Client) bool {
	return a.Name == b.Name &&
		a.Owner == b.Owner &&
		a.Secret.Equal(b.Secret) &&
		a.Scopes.Equal(b.Scopes)
}
