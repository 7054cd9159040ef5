package redis

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/internal/auth/store"
	"github.com/aussiebroadwan/familytree/pkg/cryptox"
	"github.com/redis/go-redis/v9"
)

// storedClient is the JSON form of a client record.
type storedClient struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	SecretSalt string   `json:"secret_salt"`
	SecretHash string   `json:"secret_hash"`
	Owner      string   `json:"owner,omitempty"`
	Scopes     []string `json:"scopes"`
	CreatedAt  int64    `json:"created_at"` // unix nanos
	UpdatedAt  int64    `json:"updated_at"` // unix nanos
}

func toStored(c domain.Client) storedClient {
	return storedClient{
		ID:         string(c.ID),
		Name:       c.Name,
		SecretSalt: c.Secret.Salt,
		SecretHash: c.Secret.Hash,
		Owner:      string(c.Owner),
		Scopes:     c.Scopes.Slice(),
		CreatedAt:  c.CreatedAt.UnixNano(),
		UpdatedAt:  c.UpdatedAt.UnixNano(),
	}
}

func (sc storedClient) toDomain() domain.Client {
	return domain.Client{
		ID:        domain.ClientID(sc.ID),
		Name:      sc.Name,
		Secret:    cryptox.Password{Salt: sc.SecretSalt, Hash: sc.SecretHash},
		Owner:     domain.UserID(sc.Owner),
		Scopes:    domain.NewScopes(sc.Scopes...),
		CreatedAt: time.Unix(0, sc.CreatedAt).UTC(),
		UpdatedAt: time.Unix(0, sc.UpdatedAt).UTC(),
	}
}

type clientsRepo struct {
	s *Store
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id domain.ClientID) (domain.Client, error) {
	data, err := r.s.client.Get(ctx, r.s.clientKey(string(id))).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Client{}, fmt.Errorf("%w: client %s", store.ErrNotFound, id)
		}
		return domain.Client{}, fmt.Errorf("failed to get client: %w", err)
	}

	var stored storedClient
	if err := json.Unmarshal(data, &stored); err != nil {
		return domain.Client{}, fmt.Errorf("failed to unmarshal client: %w", err)
	}
	return stored.toDomain(), nil
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	ids, err := r.s.client.SMembers(ctx, r.s.clientIndexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list client ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.s.clientKey(id)
	}

	values, err := r.s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}

	clients := make([]domain.Client, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // indexed but deleted underneath us
		}
		var stored storedClient
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			return nil, fmt.Errorf("failed to unmarshal client: %w", err)
		}
		clients = append(clients, stored.toDomain())
	}

	slices.SortFunc(clients, func(a, b domain.Client) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return clients, nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	data, err := json.Marshal(toStored(c))
	if err != nil {
		return fmt.Errorf("failed to marshal client: %w", err)
	}

	// SetNX for atomic check-and-set. Clients don't expire.
	ok, err := r.s.client.SetNX(ctx, r.s.clientKey(string(c.ID)), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: client %s", store.ErrAlreadyExists, c.ID)
	}

	return r.s.client.SAdd(ctx, r.s.clientIndexKey(), string(c.ID)).Err()
}

func (r *clientsRepo) UpsertClients(ctx context.Context, clients ...domain.Client) error {
	if len(clients) == 0 {
		return nil
	}

	payloads := make(map[string][]byte, len(clients))
	for _, c := range clients {
		data, err := json.Marshal(toStored(c))
		if err != nil {
			return fmt.Errorf("failed to marshal client %s: %w", c.ID, err)
		}
		payloads[string(c.ID)] = data
	}

	// MULTI/EXEC so readers never see half a batch.
	_, err := r.s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for id, data := range payloads {
			pipe.Set(ctx, r.s.clientKey(id), data, 0)
			pipe.SAdd(ctx, r.s.clientIndexKey(), id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert clients: %w", err)
	}
	return nil
}

func (r *clientsRepo) DeleteClient(ctx context.Context, id domain.ClientID) error {
	n, err := r.s.client.Del(ctx, r.s.clientKey(string(id))).Result()
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if err := r.s.client.SRem(ctx, r.s.clientIndexKey(), string(id)).Err(); err != nil {
		return fmt.Errorf("failed to unindex client: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: client %s", store.ErrNotFound, id)
	}
	return nil
}

func (r *clientsRepo) IsEmpty(ctx context.Context) (bool, error) {
	n, err := r.s.client.SCard(ctx, r.s.clientIndexKey()).Result()
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
