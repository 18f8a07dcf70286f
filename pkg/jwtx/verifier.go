package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// ErrInvalid wraps every verification failure: bad signature, wrong
// algorithm, issuer or audience mismatch, expiry, malformed input.
var ErrInvalid = errors.New("jwtx: invalid token")

// Verify checks signature, algorithm, issuer, audience and expiry with zero
// leeway, and returns the parsed claims.
func (s *HS256) Verify(tokenStr string) (Claims, error) {
	var claims Claims
	token, err := s.parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalid
	}
	return claims, nil
}

// IsTokenValid reports whether tokenStr passes Verify. It never panics on
// adversarial input.
func (s *HS256) IsTokenValid(tokenStr string) bool {
	_, err := s.Verify(tokenStr)
	return err == nil
}

// UsernameFromToken returns the username claim of a valid token.
func (s *HS256) UsernameFromToken(tokenStr string) (string, bool) {
	claims, err := s.Verify(tokenStr)
	if err != nil {
		return "", false
	}
	return claims.Username, true
}
