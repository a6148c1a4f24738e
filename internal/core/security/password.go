// Package security holds the credential and token primitives of the
// identity core: argon2id password hashing and HS256 JWT issuance and
// verification. Both are pure and stateless — safe for concurrent use,
// never touching storage.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// ErrMalformedDigest is returned by Verify when the stored digest cannot be
// parsed as an argon2id encoded hash.
var ErrMalformedDigest = errors.New("malformed password digest")

const (
	saltLength = 16
	keyLength  = 32
)

// HashParams are the tunable argon2id cost parameters. Memory is in KiB.
type HashParams struct {
	Time        uint32
	Memory      uint32
	Parallelism uint8
}

// DefaultHashParams mirrors the production tuning: 3 iterations, 64 MiB,
// 2 lanes.
func DefaultHashParams() HashParams {
	return HashParams{Time: 3, Memory: 64 * 1024, Parallelism: 2}
}

// Hasher derives and verifies argon2id password digests. The zero value is
// not usable; construct with NewHasher.
type Hasher struct {
	params HashParams
}

// NewHasher returns a Hasher with the given cost parameters. Zeroed fields
// fall back to the defaults.
func NewHasher(params HashParams) *Hasher {
	def := DefaultHashParams()
	if params.Time == 0 {
		params.Time = def.Time
	}
	if params.Memory == 0 {
		params.Memory = def.Memory
	}
	if params.Parallelism == 0 {
		params.Parallelism = def.Parallelism
	}
	return &Hasher{params: params}
}

// Hash derives an argon2id digest with a fresh random salt. The salt and
// cost parameters are embedded in the output, so two calls with the same
// password produce different digests; equality is only meaningful through
// Verify.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Parallelism, keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the digest with the parameters embedded in the stored
// encoding and compares the derived keys in constant time. It returns
// (false, nil) on a clean mismatch and an error only when the digest is
// structurally invalid.
func (h *Hasher) Verify(password, digest string) (bool, error) {
	params, salt, key, err := decodeDigest(digest)
	if err != nil {
		return false, err
	}

	derived := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(derived, key) == 1, nil
}

func decodeDigest(digest string) (HashParams, []byte, []byte, error) {
	var params HashParams

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return params, nil, nil, ErrMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return params, nil, nil, ErrMalformedDigest
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &params.Parallelism); err != nil {
		return params, nil, nil, ErrMalformedDigest
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, ErrMalformedDigest
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return params, nil, nil, ErrMalformedDigest
	}

	return params, salt, key, nil
}
