package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/MrFrey75/AppSimple-sub001/internal/auth/domain"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/metrics"
	"github.com/MrFrey75/AppSimple-sub001/internal/auth/store"
	"github.com/MrFrey75/AppSimple-sub001/pkg/jwtx"
	"github.com/MrFrey75/AppSimple-sub001/pkg/slogx"
	"github.com/samber/oops"
)

// AuthService exchanges credentials for a signed access token.
type AuthService struct {
	Store  store.Store
	Hasher PasswordHasher
	Tokens TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

// LoginResult is a successful login.
type LoginResult struct {
	Token string
	User  domain.User
}

// dummy returns a hash with the same work factor as real ones. Unknown
// usernames are verified against it so they cost as much as a wrong password.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		// An unparseable dummy only makes the unknown-user path faster.
		s.dummyHash, _ = s.Hasher.Hash("appsimple-dummy-password")
	})
	return s.dummyHash
}

// Login checks username and password and issues a token. Unknown usernames,
// wrong passwords and inactive accounts all return ErrInvalidCredentials.
// Legacy hashes are upgraded on a successful login.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	l := slogx.FromContext(ctx)
	username = strings.TrimSpace(username)

	user, lookupErr := s.Store.Users().GetByUsername(ctx, username)
	if lookupErr != nil && !errors.Is(lookupErr, store.ErrNotFound) {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginError).Inc()
		return LoginResult{}, oops.Code("LOGIN_FAILED").
			With("operation", "get user by username").
			Wrap(lookupErr)
	}
	exists := lookupErr == nil

	// Always verify, real hash or not.
	target := s.dummy()
	if exists {
		target = user.PasswordHash
	}
	valid := s.Hasher.Verify(password, target)

	if !exists || !valid || !user.IsActive {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInvalidCredentials).Inc()
		l.Info("login rejected",
			slog.String("username", username),
			slog.Bool("known", exists),
			slog.Bool("active", exists && user.IsActive),
		)
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	if s.Hasher.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, &user, password)
	}

	token, err := s.Tokens.GenerateToken(jwtx.Subject{
		UID:      user.UID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginError).Inc()
		return LoginResult{}, oops.Code("LOGIN_FAILED").
			With("operation", "generate token").
			With("uid", user.UID).
			Wrap(err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginSuccess).Inc()
	l.Info("login succeeded", slog.String("uid", user.UID), slog.String("role", user.Role.String()))
	return LoginResult{Token: token, User: user}, nil
}

// rehash replaces a legacy or under-strength hash. Failure is logged and the
// login still succeeds.
func (s *AuthService) rehash(ctx context.Context, user *domain.User, password string) {
	l := slogx.FromContext(ctx)

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		slogx.LogError(l, "rehash password", err)
		return
	}

	updated := *user
	updated.PasswordHash = hash
	if err := s.Store.Users().Update(ctx, updated); err != nil {
		slogx.LogError(l, "store rehashed password", oops.With("uid", user.UID).Wrap(err))
		return
	}

	*user = updated
	l.Info("upgraded password hash", slog.String("uid", user.UID))
}
