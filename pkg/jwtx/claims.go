package jwtx

import (
	"errors"
	"time"

	"github.com/MrFrey75/AppSimple-sub001/pkg/authz"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Subject is the identity a token is issued for.
type Subject struct {
	UID      string
	Username string
	Email    string
	Role     authz.Role
}

// Claims are the access-token claims shared by the API server and every
// client. Role carries the role name ("Admin" or "User"), never the code.
type Claims struct {
	jwt.RegisteredClaims

	// Username for the authenticated user
	Username string `json:"username"`

	Email string `json:"email"`

	Role string `json:"role"`
}

// NewClaims builds the claim set for s. The jti is fresh on every call, so two
// tokens for the same user at the same instant still differ. A non-positive
// ttl yields a token that is already expired.
func NewClaims(s Subject, issuer, audience string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UID,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Username: s.Username,
		Email:    s.Email,
		Role:     s.Role.String(),
	}
}

// Validate is called by the jwt parser after the registered claims have been
// checked. It rejects tokens whose custom claims cannot describe a principal.
func (c Claims) Validate() error {
	if c.Subject == "" {
		return errors.New("jwtx: missing subject")
	}
	if c.ID == "" {
		return errors.New("jwtx: missing jti")
	}
	if _, err := authz.ParseRole(c.Role); err != nil {
		return err
	}
	return nil
}

// ParsedRole returns the role claim as an authz.Role.
func (c Claims) ParsedRole() (authz.Role, error) {
	return authz.ParseRole(c.Role)
}
