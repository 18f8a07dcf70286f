package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Params is the Argon2id work factor. DefaultParams keeps a single hash in the
// tens of milliseconds on commodity hardware.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var DefaultParams = Params{
	Memory:      19 * 1024, // 19 MiB
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Upper bounds on parameters read back from a stored hash. A tampered row must
// not be able to make a single Verify allocate gigabytes.
const (
	maxMemory     = 256 * 1024
	maxIterations = 16
	maxKeyLength  = 128
)

const argon2idPrefix = "$argon2id$"

var errMalformedHash = errors.New("cryptox: malformed password hash")

// Hasher hashes and verifies credentials. It is stateless and safe for
// concurrent use. Both operations are deliberately slow; interactive callers
// should run them off their UI goroutine.
type Hasher struct {
	params Params
}

// NewHasher returns a Hasher using p. Zero fields fall back to DefaultParams.
func NewHasher(p Params) *Hasher {
	if p.Memory == 0 {
		p.Memory = DefaultParams.Memory
	}
	if p.Iterations == 0 {
		p.Iterations = DefaultParams.Iterations
	}
	if p.Parallelism == 0 {
		p.Parallelism = DefaultParams.Parallelism
	}
	if p.SaltLength == 0 {
		p.SaltLength = DefaultParams.SaltLength
	}
	if p.KeyLength == 0 {
		p.KeyLength = DefaultParams.KeyLength
	}
	return &Hasher{params: p}
}

// Hash generates a PHC-format Argon2id hash string with a fresh random salt,
// so hashing the same password twice yields two different strings.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: generate salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches encodedHash. It is case-sensitive
// and returns false for an empty candidate, a mismatch, or a hash it cannot
// parse. Legacy bcrypt hashes ($2a$, $2b$, $2y$) are accepted.
func (h *Hasher) Verify(password, encodedHash string) bool {
	if password == "" || encodedHash == "" {
		return false
	}

	switch {
	case strings.HasPrefix(encodedHash, argon2idPrefix):
		ok, err := verifyArgon2id(password, encodedHash)
		return err == nil && ok
	case isBcrypt(encodedHash):
		return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
	default:
		return false
	}
}

// NeedsRehash reports whether encodedHash should be replaced with a fresh
// Hash: it is not Argon2id, or it was produced with different parameters.
func (h *Hasher) NeedsRehash(encodedHash string) bool {
	p, _, _, err := decodeArgon2id(encodedHash)
	if err != nil {
		return true
	}
	return p.Memory != h.params.Memory ||
		p.Iterations != h.params.Iterations ||
		p.Parallelism != h.params.Parallelism
}

func isBcrypt(encodedHash string) bool {
	return strings.HasPrefix(encodedHash, "$2a$") ||
		strings.HasPrefix(encodedHash, "$2b$") ||
		strings.HasPrefix(encodedHash, "$2y$")
}

func verifyArgon2id(password, encodedHash string) (bool, error) {
	p, salt, expected, err := decodeArgon2id(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey(
		[]byte(password),
		salt,
		p.Iterations,
		p.Memory,
		p.Parallelism,
		uint32(len(expected)), // #nosec G115 -- bounded by maxKeyLength in decodeArgon2id
	)

	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

// decodeArgon2id parses $argon2id$v=19$m=X,t=Y,p=Z$salt$hash.
func decodeArgon2id(encodedHash string) (Params, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, errMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, errMalformedHash
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return Params{}, nil, nil, errMalformedHash
	}
	if p.Memory == 0 || p.Memory > maxMemory ||
		p.Iterations == 0 || p.Iterations > maxIterations ||
		p.Parallelism == 0 {
		return Params{}, nil, nil, errMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return Params{}, nil, nil, errMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxKeyLength {
		return Params{}, nil, nil, errMalformedHash
	}

	p.SaltLength = uint32(len(salt)) // #nosec G115 -- decoded from a short string
	p.KeyLength = uint32(len(key))   // #nosec G115 -- bounded above
	return p, salt, key, nil
}
