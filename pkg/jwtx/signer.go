package jwtx

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// MinSecretLength is the shortest signing secret accepted, in characters.
	MinSecretLength = 32

	DefaultIssuer   = "AppSimple"
	DefaultAudience = "AppSimple"
	DefaultLifetime = 60 * time.Minute
)

var (
	ErrSecretMissing  = errors.New("jwtx: signing secret is not configured")
	ErrSecretTooShort = fmt.Errorf("jwtx: signing secret must be at least %d characters", MinSecretLength)
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Config is the token service configuration. A Lifetime of zero or less is
// allowed and produces tokens that are expired on issue.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	Lifetime time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Validate checks the secret. Anything it rejects is a fatal startup error.
func (c Config) Validate() error {
	if c.Secret == "" {
		return ErrSecretMissing
	}
	if utf8.RuneCountInString(c.Secret) < MinSecretLength {
		return ErrSecretTooShort
	}
	return nil
}

// HS256 issues and validates HMAC-SHA256 signed bearer tokens. It holds no
// mutable state and is safe for concurrent use.
type HS256 struct {
	key      []byte
	issuer   string
	audience string
	lifetime time.Duration
	now      func() time.Time
	parser   *jwt.Parser
}

var (
	_ Signer   = (*HS256)(nil)
	_ Verifier = (*HS256)(nil)
)

// NewHS256 builds the token service. It fails if the secret is missing or
// shorter than MinSecretLength.
func NewHS256(cfg Config) (*HS256, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.Audience == "" {
		cfg.Audience = DefaultAudience
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &HS256{
		key:      []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		lifetime: cfg.Lifetime,
		now:      cfg.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(cfg.Now),
		),
	}, nil
}

func (s *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// GenerateToken issues a token for sub using the configured issuer, audience
// and lifetime.
func (s *HS256) GenerateToken(sub Subject) (string, error) {
	claims := NewClaims(sub, s.issuer, s.audience, s.lifetime, s.now().UTC())
	return s.Sign(claims)
}

// Lifetime reports how long issued tokens stay valid.
func (s *HS256) Lifetime() time.Duration { return s.lifetime }
