package app

import (
	"context"
	"time"

	"github.com/MrFrey75/AppSimple-sub001/pkg/httpx"
	"github.com/MrFrey75/AppSimple-sub001/pkg/jwtx"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	JWT JWTConfig

	DatabaseFile  string `env:"APPSIMPLE_DATABASE_FILE,  default=appsimple.db"`
	AdminPassword string `env:"APPSIMPLE_ADMIN_PASSWORD, default=Admin123!"`

	Env                 string        `env:"ENV,                   default=dev"`
	LogLevel            string        `env:"LOG_LEVEL,             default=info"`
	LogFormat           string        `env:"LOG_FORMAT,            default=json"`
	Port                int           `env:"PORT,                  default=8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD, default=10s"`

	// Login attempts allowed per IP and username in each window.
	LoginRateLimit  int           `env:"APPSIMPLE_LOGIN_RATE_LIMIT,  default=5"`
	LoginRateWindow time.Duration `env:"APPSIMPLE_LOGIN_RATE_WINDOW, default=1m"`

	// TrustProxy takes the client IP from forwarding headers. Leave it off
	// unless a reverse proxy overwrites them.
	TrustProxy bool `env:"APPSIMPLE_TRUST_PROXY, default=false"`
}

type JWTConfig struct {
	// Secret is checked by Validate rather than marked required, so the
	// database commands can load a Config without one.
	Secret            string `env:"APPSIMPLE_JWT_SECRET"`
	Issuer            string `env:"APPSIMPLE_JWT_ISSUER,             default=AppSimple"`
	Audience          string `env:"APPSIMPLE_JWT_AUDIENCE,           default=AppSimple"`
	ExpirationMinutes int    `env:"APPSIMPLE_JWT_EXPIRATION_MINUTES, default=60"`
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig(ctx context.Context) (Config, error) {
	return LoadConfigFrom(ctx, envconfig.OsLookuper())
}

// LoadConfigFrom reads the configuration through l.
func LoadConfigFrom(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects a configuration the API server must not start with.
func (c Config) Validate() error {
	return c.TokenConfig().Validate()
}

// TokenConfig is the token service configuration. A zero or negative
// expiration is passed through and yields tokens that are expired on issue.
func (c Config) TokenConfig() jwtx.Config {
	return jwtx.Config{
		Secret:   c.JWT.Secret,
		Issuer:   c.JWT.Issuer,
		Audience: c.JWT.Audience,
		Lifetime: time.Duration(c.JWT.ExpirationMinutes) * time.Minute,
	}
}

// LoginLimit is the rate limit for the login endpoint. Invalid values fall
// back to httpx.StrictLimit.
func (c Config) LoginLimit() httpx.RateLimitConfig {
	limit := httpx.RateLimitConfig{
		RequestsPerWindow: c.LoginRateLimit,
		Window:            c.LoginRateWindow,
		Burst:             c.LoginRateLimit,
	}
	if !limit.Valid() {
		return httpx.StrictLimit
	}
	return limit
}
