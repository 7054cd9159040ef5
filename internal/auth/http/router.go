package http

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/security"
	"github.com/aussiebroadwan/familytree/internal/auth/service"
	"github.com/aussiebroadwan/familytree/internal/auth/store"
	"github.com/aussiebroadwan/familytree/pkg/httpx"
	"github.com/aussiebroadwan/familytree/pkg/slogx"

	_ "github.com/aussiebroadwan/familytree/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	AuthorityAdminRead  = "ROLE_admin:read"
	AuthorityAdminWrite = "ROLE_admin:write"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	// DebugEndpoints mounts /v1/debug/*.
	DebugEndpoints bool

	// Now is the clock reported by /v1/debug/now. Defaults to time.Now.
	Now func() time.Time

	// TrustedProxies are peers whose X-Forwarded-For and X-Real-IP headers
	// name the caller for per-IP rate limits. Empty keys on the peer.
	TrustedProxies []netip.Prefix

	TokenService  *service.TokenService
	ClientService *service.ClientService
}

// NewRouter builds a router whose global chain logs every request and
// resolves bearer tokens into principals.
func NewRouter(
	buildVersion string,
	st store.Store,
	decoder security.TokenDecoder,
	manager security.AuthenticationManager,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		Now:          time.Now,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		security.AccessTokenFilter(decoder, manager),
	}

	return r
}

func (r *Router) byIP(cfg httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimit(cfg, httpx.ForwardedClientIP(r.TrustedProxies))
}

func (r *Router) bySubject(cfg httpx.RateLimitConfig) httpx.Middleware {
	return httpx.RateLimit(cfg, httpx.SubjectOr(httpx.ForwardedClientIP(r.TrustedProxies)))
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth2()
	r.registerClients()
	r.registerSystem()
	if r.DebugEndpoints {
		r.registerDebug()
	}

	// API docs are static and public
	r.Mux.Handle("GET /swagger/",
		httpx.Chain(httpSwagger.Handler(),
			r.byIP(httpx.PublicLimit),
		),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			FamilyTree Authentication Service API
//	@version		0.1.0
//	@description	OAuth2-style token service. Registered clients exchange their credentials for short-lived bearer tokens.
//	@description
//	@description				Tokens are HS512-signed JWTs; resource servers sharing the key can verify them locally.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/familytree
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.basic	BasicAuth
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth2() {
	// POST /token - strict rate limit by IP (brute force prevention on client secrets).
	// Both paths share one handler and so one set of buckets.
	tokenHandler := httpx.Chain(&TokenHandler{
		ClientService: r.ClientService,
		TokenService:  r.TokenService,
	},
		r.byIP(httpx.StrictLimit),
	)
	r.Mux.Handle("POST /v1/oauth2/token", tokenHandler)
	r.Mux.Handle("POST /token", tokenHandler)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{ClientService: r.ClientService}

	// POST /v1/clients - Create client (requires admin:write) - moderate rate limit
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		security.RequireAnyAuthority(AuthorityAdminWrite),
		r.bySubject(httpx.ModerateLimit),
	)

	// GET /v1/clients - List clients (requires admin:read)
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		security.RequireAnyAuthority(AuthorityAdminRead),
		r.bySubject(httpx.ModerateLimit),
	)

	// DELETE /v1/clients/{id} - Delete client (requires admin:write)
	securedDelete := httpx.Chain(http.HandlerFunc(h.HandleDelete),
		security.RequireAnyAuthority(AuthorityAdminWrite),
		r.bySubject(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/clients", securedCreate)
	r.Mux.Handle("GET /v1/clients", securedList)
	r.Mux.Handle("DELETE /v1/clients/{id}", securedDelete)
}

func (r *Router) registerDebug() {
	r.Mux.Handle("GET /v1/debug/now",
		httpx.Chain(NowHandler(r.Now),
			r.byIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/debug/whoami",
		httpx.Chain(WhoAmIHandler(),
			r.byIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			r.byIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.TokenService.Codec),
			r.byIP(httpx.LenientLimit),
		),
	)
}
