package apikey

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters.
const (
	Argon2Time        = 2
	Argon2Memory      = 16 * 1024 // KiB
	Argon2Parallelism = 2
	Argon2KeyLen      = 32
	Argon2SaltLen     = 16

	hashPrefix = "$argon2id$"
	hashParams = "v=19$m=16384,t=2,p=2"
)

// DefaultCacheTTL is how long a successful verification is remembered.
const DefaultCacheTTL = 5 * time.Minute

// ErrMalformedHash is returned for strings that are not argon2id hashes.
var ErrMalformedHash = errors.New("malformed argon2id hash")

// Hash computes an Argon2id hash of key with a random salt.
func Hash(key string) (string, error) {
	salt := make([]byte, Argon2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(key), salt, Argon2Time, Argon2Memory, Argon2Parallelism, Argon2KeyLen)

	return hashPrefix + hashParams + "$" +
		base64.RawStdEncoding.EncodeToString(salt) + "$" +
		base64.RawStdEncoding.EncodeToString(hash), nil
}

// IsHash reports whether s looks like an argon2id hash.
func IsHash(s string) bool {
	return strings.HasPrefix(s, hashPrefix)
}

// ParseHash validates the hash format and returns salt and digest.
func ParseHash(s string) (salt, digest []byte, err error) {
	parts := strings.Split(s, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, nil, ErrMalformedHash
	}
	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return nil, nil, ErrMalformedHash
	}
	return salt, digest, nil
}

// Compare reports whether key matches the argon2id hash.
func Compare(key, hash string) bool {
	salt, digest, err := ParseHash(hash)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(key), salt, Argon2Time, Argon2Memory, Argon2Parallelism, uint32(len(digest)))
	return subtle.ConstantTimeCompare(computed, digest) == 1
}

// Verifier checks presented keys against one configured key, given either
// as plain text or as an argon2id hash. Successful hash verifications are
// cached by key digest so repeated requests skip the Argon2 cost.
type Verifier struct {
	plain string
	hash  string
	cache *cache.Cache
}

// NewVerifier creates a Verifier. When hash is set it takes precedence
// over plain.
func NewVerifier(plain, hash string) *Verifier {
	return &Verifier{
		plain: plain,
		hash:  hash,
		cache: cache.New(DefaultCacheTTL, 2*DefaultCacheTTL),
	}
}

// VerifyKey reports whether key is accepted.
func (v *Verifier) VerifyKey(key string) bool {
	if key == "" {
		return false
	}

	if v.hash == "" {
		if v.plain == "" {
			return false
		}
		return subtle.ConstantTimeCompare([]byte(key), []byte(v.plain)) == 1
	}

	sum := sha256.Sum256([]byte(key))
	id := hex.EncodeToString(sum[:])
	if _, ok := v.cache.Get(id); ok {
		return true
	}

	if !Compare(key, v.hash) {
		return false
	}
	v.cache.SetDefault(id, struct{}{})
	return true
}
