package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Client administration. The server requires the admin:read or admin:write
// scope; the session checks the same scopes up front unless
// SDKClient.CheckScopes is off.

// CreateClient registers a new client. The secret in the response is shown once.
func (s *Session) CreateClient(ctx context.Context, req CreateClientRequest) (*CreateClientResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/clients", body, headers, "admin:write")
	if err != nil {
		return nil, err
	}

	var created CreateClientResponse
	if err := decodeJSON(resp, &created, http.StatusCreated); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListClients returns all registered clients, newest first.
func (s *Session) ListClients(ctx context.Context) (*ListClientsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/clients", nil, nil, "admin:read")
	if err != nil {
		return nil, err
	}

	var list ListClientsResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteClient removes a client. Tokens already issued to it stop working.
func (s *Session) DeleteClient(ctx context.Context, clientID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/clients/"+url.PathEscape(clientID), nil, nil, "admin:write")
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
