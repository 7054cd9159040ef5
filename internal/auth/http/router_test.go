package http_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/domain"
	httpapi "github.com/aussiebroadwan/familytree/internal/auth/http"
	"github.com/aussiebroadwan/familytree/internal/auth/service"
	"github.com/aussiebroadwan/familytree/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/familytree/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var testKey = bytes.Repeat([]byte{0x7e}, 64)

// ipSeq hands every request its own peer address so the per-IP limits on
// the token endpoint never kick in.
var ipSeq atomic.Int64

type testServer struct {
	router  *httpapi.Router
	clients *service.ClientService
}

type option func(*httpapi.Router)

func withDebug(now func() time.Time) option {
	return func(r *httpapi.Router) {
		r.DebugEndpoints = true
		if now != nil {
			r.Now = now
		}
	}
}

func newTestServer(t *testing.T, opts ...option) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	clients := &service.ClientService{Store: st}
	_, err = clients.ApplyDefinitions(context.Background(), []domain.ClientDefinition{
		{ID: "client-1", PlainSecret: "s3cret", Scopes: domain.ParseScopes("a b c")},
		{ID: "owned", PlainSecret: "owned-secret", Owner: "user-42", Scopes: domain.ParseScopes("a")},
		{ID: "admin", PlainSecret: "admin-secret", Scopes: domain.ParseScopes("admin:read admin:write")},
		{ID: "reader", PlainSecret: "reader-secret", Scopes: domain.ParseScopes("admin:read")},
	})
	require.NoError(t, err)

	codec, err := service.NewTokenCodec(service.TokenCodecConfig{Key: testKey, Issuer: "familytree-auth"})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := httpapi.NewRouter("test", st, codec, &service.PrincipalAuthenticator{Clients: clients}, logger)
	router.ClientService = clients
	router.TokenService = &service.TokenService{
		Issuer: &service.TokenIssuer{Duration: time.Hour},
		Codec:  codec,
	}
	for _, opt := range opts {
		opt(router)
	}
	router.ApplyRoutes()

	return &testServer{router: router, clients: clients}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	// httptest.NewRequest's default; tests that pin an address keep theirs.
	if req.RemoteAddr == "192.0.2.1:1234" {
		n := ipSeq.Add(1)
		req.RemoteAddr = fmt.Sprintf("10.%d.%d.%d:1234", n>>16&0xff, n>>8&0xff, n&0xff)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) postToken(form url.Values, basic string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/oauth2/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if basic != "" {
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(basic)))
	}
	return s.do(req)
}

func (s *testServer) token(t *testing.T, id, secret string) string {
	t.Helper()
	rec := s.postToken(url.Values{"grant_type": {"client_credentials"}}, id+":"+secret)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[map[string]any](t, rec)["access_token"].(string)
}

func (s *testServer) get(path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return s.do(req)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type oauthError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

func requireOAuthError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) oauthError {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	e := decode[oauthError](t, rec)
	require.Equal(t, code, e.Error)
	return e
}

func TestTokenEndpoint_ClientCredentials(t *testing.T) {
	s := newTestServer(t)

	t.Run("narrowed scope", func(t *testing.T) {
		rec := s.postToken(url.Values{"grant_type": {"client_credentials"}, "scope": {"a c e"}}, "client-1:s3cret")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		body := decode[map[string]any](t, rec)
		require.Equal(t, "a c", body["scope"])
		require.Equal(t, "Bearer", body["token_type"])
		require.NotEmpty(t, body["access_token"])
		require.NotContains(t, body, "refresh_token")

		expiresIn := body["expires_in"].(float64)
		require.GreaterOrEqual(t, expiresIn, float64(3598))
		require.LessOrEqual(t, expiresIn, float64(3600))
	})

	t.Run("omitted scope grants everything allowed", func(t *testing.T) {
		rec := s.postToken(url.Values{"grant_type": {"client_credentials"}}, "client-1:s3cret")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "a b c", decode[map[string]any](t, rec)["scope"])
	})

	t.Run("disjoint scope is invalid_scope", func(t *testing.T) {
		rec := s.postToken(url.Values{"grant_type": {"client_credentials"}, "scope": {"d e f"}}, "client-1:s3cret")
		requireOAuthError(t, rec, http.StatusBadRequest, "invalid_scope")
	})

	t.Run("empty scope is invalid_scope", func(t *testing.T) {
		rec := s.postToken(url.Values{"grant_type": {"client_credentials"}, "scope": {""}}, "client-1:s3cret")
		requireOAuthError(t, rec, http.StatusBadRequest, "invalid_scope")
	})

	t.Run("form credentials", func(t *testing.T) {
		rec := s.postToken(url.Values{
			"grant_type":    {"client_credentials"},
			"client_id":     {"client-1"},
			"client_secret": {"s3cret"},
			"scope":         {"b"},
		}, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Equal(t, "b", decode[map[string]any](t, rec)["scope"])
	})

	t.Run("lowercase basic scheme", func(t *testing.T) {
		form := url.Values{"grant_type": {"client_credentials"}}
		req := httptest.NewRequest(http.MethodPost, "/v1/oauth2/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Authorization", "basic "+base64.StdEncoding.EncodeToString([]byte("client-1:s3cret")))
		require.Equal(t, http.StatusOK, s.do(req).Code)
	})
}

func TestTokenEndpoint_Errors(t *testing.T) {
	s := newTestServer(t)

	t.Run("no grant type", func(t *testing.T) {
		rec := s.postToken(url.Values{}, "client-1:s3cret")
		e := requireOAuthError(t, rec, http.StatusBadRequest, "invalid_request")
		require.Equal(t, "No Grant Type was specified", e.Description)
	})

	t.Run("unknown client", func(t *testing.T) {
		rec := s.postToken(url.Values{"grant_type": {"client_credentials"}}, "abcd:1234")
		e := requireOAuthError(t, rec, http.StatusUnauthorized, "invalid_client")
		require.Equal(t, "Bad client credentials", e.Description)
	})

	t.Run("wrong secret looks like unknown client", func(t *testing.T) {
		rec := s.postToken(url.Values{"grant_type": {"client_credentials"}}, "client-1:nope")
		e := requireOAuthError(t, rec, http.StatusUnauthorized, "invalid_client")
		require.Equal(t, "Bad client credentials", e.Description)
	})

	t.Run("no credentials", func(t *testing.T) {
		rec := s.postToken(url.Values{"grant_type": {"client_credentials"}}, "")
		requireOAuthError(t, rec, http.StatusUnauthorized, "invalid_client")
	})

	t.Run("malformed basic header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/oauth2/token", strings.NewReader("grant_type=client_credentials"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Authorization", "Basic !!!not-base64")
		e := requireOAuthError(t, s.do(req), http.StatusBadRequest, "invalid_request")
		require.Equal(t, "Basic Authorization header was malformed", e.Description)
	})

	t.Run("basic header without colon", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/oauth2/token", strings.NewReader("grant_type=client_credentials"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("client-1")))
		requireOAuthError(t, s.do(req), http.StatusBadRequest, "invalid_request")
	})

	t.Run("missing grant parameters", func(t *testing.T) {
		rec := s.postToken(url.Values{"grant_type": {"password"}, "username": {"bob"}}, "client-1:s3cret")
		e := requireOAuthError(t, rec, http.StatusBadRequest, "invalid_request")
		require.Equal(t, "Missing required parameters: [password]", e.Description)
	})

	t.Run("unknown grant type", func(t *testing.T) {
		rec := s.postToken(url.Values{"grant_type": {"magic"}}, "client-1:s3cret")
		e := requireOAuthError(t, rec, http.StatusBadRequest, "unsupported_grant_type")
		require.Equal(t, "Unsupported grant type: magic", e.Description)
	})

	t.Run("recognised but unsupported grant", func(t *testing.T) {
		rec := s.postToken(url.Values{"grant_type": {"refresh_token"}, "refresh_token": {"r"}}, "client-1:s3cret")
		e := requireOAuthError(t, rec, http.StatusBadRequest, "unsupported_grant_type")
		require.Equal(t, "Unsupported grant type: refresh_token", e.Description)
	})

	t.Run("media type is case-insensitive and takes parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/oauth2/token", strings.NewReader("grant_type=client_credentials"))
		req.Header.Set("Content-Type", "Application/X-WWW-Form-Urlencoded; charset=UTF-8")
		req.SetBasicAuth("client-1", "s3cret")
		require.Equal(t, http.StatusOK, s.do(req).Code)
	})

	t.Run("json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/oauth2/token", strings.NewReader(`{"grant_type":"client_credentials"}`))
		req.Header.Set("Content-Type", "application/json")
		requireOAuthError(t, s.do(req), http.StatusBadRequest, "invalid_request")
	})
}

func TestClientsAPI(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "admin", "admin-secret")
	reader := s.token(t, "reader", "reader-secret")
	plain := s.token(t, "client-1", "s3cret")

	create := func(bearer, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/clients", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		return s.do(req)
	}
	del := func(bearer, id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/v1/clients/"+id, nil)
		req.Header.Set("Authorization", "Bearer "+bearer)
		return s.do(req)
	}

	t.Run("anonymous is 401", func(t *testing.T) {
		rec := s.get("/v1/clients", "")
		requireOAuthError(t, rec, http.StatusUnauthorized, "invalid_token")
		require.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("forged token is 401", func(t *testing.T) {
		requireOAuthError(t, s.get("/v1/clients", "not.a.token"), http.StatusUnauthorized, "invalid_token")
	})

	t.Run("missing authority is 403", func(t *testing.T) {
		requireOAuthError(t, s.get("/v1/clients", plain), http.StatusForbidden, "access_denied")
		requireOAuthError(t, create(reader, `{"scopes":["a"]}`), http.StatusForbidden, "access_denied")
	})

	t.Run("list", func(t *testing.T) {
		rec := s.get("/v1/clients", reader)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode[struct {
			Clients []struct {
				ID     string   `json:"id"`
				Scopes []string `json:"scopes"`
			} `json:"clients"`
		}](t, rec)
		require.Len(t, body.Clients, 4)
		require.NotContains(t, rec.Body.String(), "secret")
	})

	t.Run("create, use, delete", func(t *testing.T) {
		rec := create(admin, `{"name":"svc","scopes":["x","y"]}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		created := decode[struct {
			ClientID     string   `json:"client_id"`
			ClientSecret string   `json:"client_secret"`
			Scopes       []string `json:"scopes"`
		}](t, rec)
		require.NotEmpty(t, created.ClientID)
		require.NotEmpty(t, created.ClientSecret)
		require.Equal(t, []string{"x", "y"}, created.Scopes)

		tok := s.token(t, created.ClientID, created.ClientSecret)

		require.Equal(t, http.StatusNoContent, del(admin, created.ClientID).Code)
		requireOAuthError(t, del(admin, created.ClientID), http.StatusNotFound, "not_found")

		// The deleted client's token no longer authenticates.
		requireOAuthError(t, s.get("/v1/clients", tok), http.StatusUnauthorized, "invalid_token")
	})

	t.Run("create validation", func(t *testing.T) {
		requireOAuthError(t, create(admin, `{`), http.StatusBadRequest, "invalid_request")
		requireOAuthError(t, create(admin, `{"name":"empty","scopes":[]}`), http.StatusBadRequest, "invalid_request")
		requireOAuthError(t, create(admin, `{"scopes":["a"],"secret":"mine"}`), http.StatusBadRequest, "invalid_request")
		requireOAuthError(t, create(admin, `{"scopes":["a"]}{"scopes":["b"]}`), http.StatusBadRequest, "invalid_request")
	})
}

func TestDebugEndpoints(t *testing.T) {
	t.Run("not mounted by default", func(t *testing.T) {
		s := newTestServer(t)
		require.Equal(t, http.StatusNotFound, s.get("/v1/debug/now", "").Code)
	})

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestServer(t, withDebug(func() time.Time { return fixed }))

	t.Run("now", func(t *testing.T) {
		rec := s.get("/v1/debug/now", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "2025-06-01T12:00:00Z", decode[map[string]any](t, rec)["now"])
	})

	t.Run("whoami anonymous", func(t *testing.T) {
		rec := s.get("/v1/debug/whoami", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, map[string]any{"authenticated": false}, decode[map[string]any](t, rec))
	})

	t.Run("whoami with token", func(t *testing.T) {
		rec := s.get("/v1/debug/whoami", s.token(t, "client-1", "s3cret"))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[map[string]any](t, rec)
		require.Equal(t, true, body["authenticated"])
		require.Equal(t, "client-1", body["client_id"])
		require.Equal(t, "client-1", body["user_id"])
		require.Equal(t, "a b c", body["scope"])
		require.Equal(t, []any{"ROLE_a", "ROLE_b", "ROLE_c"}, body["authorities"])
	})

	t.Run("owner becomes the subject", func(t *testing.T) {
		rec := s.get("/v1/debug/whoami", s.token(t, "owned", "owned-secret"))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[map[string]any](t, rec)
		require.Equal(t, "owned", body["client_id"])
		require.Equal(t, "user-42", body["user_id"])
	})
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.get("/livez", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[map[string]any](t, rec)["status"])

	rec = s.get("/readyz", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}](t, rec)
	require.Equal(t, "ok", body.Status)
	require.Equal(t, map[string]string{"store": "ok", "signer": "ok"}, body.Checks)
}

func TestTokenEndpoint_RootPath(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader("grant_type=client_credentials&scope=a"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("client-1", "s3cret")
	rec := s.do(req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "a", decode[map[string]any](t, rec)["scope"])
}

func TestTokenEndpoint_RateLimitKeysOnPeer(t *testing.T) {
	guess := func(s *testServer, path, remote, forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("grant_type=client_credentials"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.SetBasicAuth("client-1", "wrong")
		req.RemoteAddr = remote
		req.Header.Set("X-Forwarded-For", forwarded)
		return s.do(req).Code
	}

	t.Run("rotating X-Forwarded-For is ignored", func(t *testing.T) {
		s := newTestServer(t)

		codes := map[int]int{}
		for i := range 50 {
			codes[guess(s, "/v1/oauth2/token", "203.0.113.7:5000", fmt.Sprintf("198.51.100.%d", i))]++
		}
		require.Equal(t, httpx.StrictLimit.Burst, codes[http.StatusUnauthorized])
		require.Equal(t, 50-httpx.StrictLimit.Burst, codes[http.StatusTooManyRequests])
	})

	t.Run("both token paths share a bucket", func(t *testing.T) {
		s := newTestServer(t)

		for range httpx.StrictLimit.Burst {
			require.Equal(t, http.StatusUnauthorized, guess(s, "/v1/oauth2/token", "203.0.113.8:5000", ""))
		}
		require.Equal(t, http.StatusTooManyRequests, guess(s, "/token", "203.0.113.8:5000", ""))
	})

	t.Run("trusted proxy forwards the caller", func(t *testing.T) {
		trusted, err := httpx.ParseTrustedProxies([]string{"10.10.0.0/16"})
		require.NoError(t, err)
		s := newTestServer(t, func(r *httpapi.Router) { r.TrustedProxies = trusted })

		for i := range 20 {
			code := guess(s, "/v1/oauth2/token", "10.10.0.1:5000", fmt.Sprintf("198.51.100.%d", i))
			require.Equal(t, http.StatusUnauthorized, code, "request %d", i+1)
		}
	})
}
