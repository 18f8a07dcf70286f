// Package service implements the account operations of the auth server on top
// of a store.Store: bootstrap and reset, login, and user management.
package service

import (
	"github.com/MrFrey75/AppSimple-sub001/pkg/jwtx"
)

// PasswordHasher is satisfied by *cryptox.Hasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) bool
	NeedsRehash(encodedHash string) bool
}

// TokenIssuer is satisfied by *jwtx.HS256.
type TokenIssuer interface {
	GenerateToken(sub jwtx.Subject) (string, error)
}
