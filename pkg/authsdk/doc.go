/*
Package authsdk provides a client SDK for the FamilyTree authentication service.

# Overview

The service issues short-lived bearer tokens to registered clients using the
OAuth2 client_credentials grant. The SDK wraps the token endpoint and the
client administration API.

	client := authsdk.NewSDKClient("https://auth.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Authenticate to create a session
	session, err := client.AuthenticateWithClientCredentials(ctx, clientID, clientSecret, []string{"admin:read"})

	// List registered clients (requires admin:read scope)
	clients, err := session.ListClients(ctx)

Client credentials are sent with HTTP Basic authentication. Omitting scopes
requests every scope the client is allowed; the response lists what was
actually granted.

# Token Renewal

No refresh tokens are issued. A Session built from client credentials keeps
them and re-runs the grant when its access token is within 30 seconds of
expiry. A Session built with NewSessionFromToken cannot renew and returns
ErrSessionExpired instead.

# Scope Requirements

Administrative operations require:

  - admin:read: list clients
  - admin:write: create and delete clients

Client-side scope checking is enabled by default but can be disabled for testing:

	client.CheckScopes = false

# Error Handling

Non-2xx responses are returned as *OAuth2Error carrying the HTTP status, the
OAuth2 error code and its description:

	_, err := client.ClientCredentialsGrant(ctx, id, secret, nil)
	var oe *authsdk.OAuth2Error
	if errors.As(err, &oe) && oe.Code == authsdk.ErrorCodeInvalidClient {
		// bad credentials
	}

# Thread Safety

Sessions are safe for concurrent use.
*/
package authsdk
