package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	"github.com/aussiebroadwan/familytree/internal/auth/service"
	"github.com/aussiebroadwan/familytree/pkg/authsdk"
	"github.com/aussiebroadwan/familytree/pkg/httpx"
	"github.com/aussiebroadwan/familytree/pkg/slogx"
)

// ClientsHandler handles all client management endpoints.
type ClientsHandler struct {
	ClientService *service.ClientService
}

// HandleCreate handles POST /v1/clients
//
//	@Summary		Create Client
//	@Description	Registers a new client with a generated id and secret. The secret is only returned once.
//	@Tags			Clients
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string							true	"Bearer token with admin:write scope"
//	@Param			request			body		authsdk.CreateClientRequest		true	"Client creation request"
//	@Success		201				{object}	authsdk.CreateClientResponse	"client_id and client_secret"
//	@Failure		400				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		401				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		403				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Failure		500				{object}	authsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/clients [post].
func (h *ClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authsdk.CreateClientRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		authsdk.ErrInvalidRequest.WithDescription("Invalid JSON in request body: " + err.Error()).WriteError(w)
		return
	}

	scopes := domain.NewScopes(req.Scopes...)
	if scopes.IsEmpty() {
		authsdk.ErrInvalidRequest.WithDescription("At least one scope is required").WriteError(w)
		return
	}

	client, secret, err := h.ClientService.CreateClient(ctx, req.Name, domain.UserID(req.Owner), scopes)
	if err != nil {
		internalError(w, r, "Failed to create client", err)
		return
	}

	slogx.FromContext(ctx).Info("client created", "client_id", client.ID, "scopes", client.Scopes.String())
	httpx.WriteJSON(w, http.StatusCreated, authsdk.CreateClientResponse{
		ClientID:     string(client.ID),
		ClientSecret: secret,
		Scopes:       client.Scopes.Slice(),
	})
}

// HandleList handles GET /v1/clients
//
//	@Summary		List Clients
//	@Description	Returns all registered clients, newest first. Secrets are never returned.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token with admin:read scope"
//	@Success		200				{object}	authsdk.ListClientsResponse	"List of clients"
//	@Failure		401				{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		403				{object}	authsdk.ErrorResponse		"error, error_description"
//	@Failure		500				{object}	authsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/clients [get].
func (h *ClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clients, err := h.ClientService.ListClients(ctx)
	if err != nil {
		internalError(w, r, "Failed to list clients", err)
		return
	}

	infos := make([]authsdk.ClientInfo, len(clients))
	for i, c := range clients {
		infos[i] = clientInfo(c)
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.ListClientsResponse{Clients: infos})
}

// HandleDelete handles DELETE /v1/clients/{id}
//
//	@Summary		Delete Client
//	@Description	Deletes a client by ID. Tokens already issued to it stop authenticating.
//	@Tags			Clients
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header	string	true	"Bearer token with admin:write scope"
//	@Param			id				path	string	true	"Client ID"
//	@Success		204				"Client deleted successfully"
//	@Failure		401				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		403				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		404				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Failure		500				{object}	authsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/clients/{id} [delete].
func (h *ClientsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientID := domain.ClientID(r.PathValue("id"))

	if err := h.ClientService.DeleteClient(ctx, clientID); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			authsdk.ErrNotFound.WithDescription("Client not found").WriteError(w)
			return
		}
		internalError(w, r, "Failed to delete client", err, "client_id", clientID)
		return
	}

	slogx.FromContext(ctx).Info("client deleted", "client_id", clientID)
	httpx.NoContent(w)
}

// clientInfo is the public view of a client. The secret never leaves.
func clientInfo(c domain.Client) authsdk.ClientInfo {
	return authsdk.ClientInfo{
		ID:        string(c.ID),
		Name:      c.Name,
		Owner:     string(c.Owner),
		Scopes:    c.Scopes.Slice(),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
