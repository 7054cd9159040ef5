package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/familytree/pkg/httpx"
	"github.com/joeshaw/envdecode"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	Issuer         string        `env:"AUTH_ISSUER,default=familytree-auth"`
	SigningKeyFile string        `env:"AUTH_SIGNING_KEY_FILE"` // empty: ephemeral key, tokens die with the process
	AccessTokenTTL time.Duration `env:"AUTH_ACCESS_TOKEN_TTL,default=1h"`

	ClientStore  string `env:"AUTH_CLIENT_STORE,default=sqlite"` // sqlite or redis
	DatabaseFile string `env:"AUTH_DATABASE_FILE,default=auth.db"`

	RedisAddr      string `env:"AUTH_REDIS_ADDR,default=localhost:6379"`
	RedisPassword  string `env:"AUTH_REDIS_PASSWORD"`
	RedisDB        int    `env:"AUTH_REDIS_DB,default=0"`
	RedisKeyPrefix string `env:"AUTH_REDIS_KEY_PREFIX,default=familytree:"`

	ClientsFile        string        `env:"AUTH_CLIENTS_FILE"`
	ClientSyncInterval time.Duration `env:"AUTH_CLIENT_SYNC_INTERVAL,default=5m"`

	DebugEndpoints bool `env:"AUTH_DEBUG_ENDPOINTS,default=false"`

	// TrustedProxies are CIDRs or addresses, separated by ';', whose
	// forwarding headers are honoured by per-IP rate limits.
	TrustedProxies []string `env:"AUTH_TRUSTED_PROXIES"`

	Env                 string        `env:"ENV,default=dev"`
	LogLevel            string        `env:"LOG_LEVEL,default=info"`
	LogFormat           string        `env:"LOG_FORMAT,default=json"`
	Port                int           `env:"PORT,default=8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD,default=10s"`
}

// LoadConfig decodes the environment into a Config and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.ClientStore {
	case StoreSQLite, StoreRedis:
	default:
		return fmt.Errorf("config: unknown AUTH_CLIENT_STORE %q (want %s or %s)", c.ClientStore, StoreSQLite, StoreRedis)
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("config: AUTH_ACCESS_TOKEN_TTL must be positive, got %s", c.AccessTokenTTL)
	}
	if c.Issuer == "" {
		return errors.New("config: AUTH_ISSUER must not be empty")
	}
	if _, err := httpx.ParseTrustedProxies(c.TrustedProxies); err != nil {
		return fmt.Errorf("config: AUTH_TRUSTED_PROXIES: %w", err)
	}
	if c.ClientsFile != "" && c.ClientSyncInterval <= 0 {
		return fmt.Errorf("config: AUTH_CLIENT_SYNC_INTERVAL must be positive, got %s", c.ClientSyncInterval)
	}
	return nil
}
