package security

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnsupportedAlgorithm = errors.New("security: unsupported hash algorithm")
	ErrEmptyPassword        = errors.New("security: empty password")
)

// PasswordHasher turns passwords into storable hashes and checks them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(password, hash string) bool
}

// Salted hash algorithms.
const (
	SHA256 = "sha256"
	SHA512 = "sha512"
)

// SaltedHasher hashes salt+password with a fixed salt and renders the digest
// as lowercase hex. It exists for password tables created by older
// deployments; new tables should use BcryptHasher.
type SaltedHasher struct {
	newHash func() hash.Hash
	salt    string
}

// NewSaltedHasher creates a hasher for algorithm (SHA256 or SHA512).
func NewSaltedHasher(algorithm, salt string) (*SaltedHasher, error) {
	var fn func() hash.Hash
	switch algorithm {
	case SHA256:
		fn = sha256.New
	case SHA512:
		fn = sha512.New
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}
	return &SaltedHasher{newHash: fn, salt: salt}, nil
}

func (h *SaltedHasher) Hash(password string) (string, error) {
	d := h.newHash()
	d.Write([]byte(h.salt))
	d.Write([]byte(password))
	return hex.EncodeToString(d.Sum(nil)), nil
}

// Matches compares in constant time.
func (h *SaltedHasher) Matches(password, hashed string) bool {
	got, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(hashed)) == 1
}

// BcryptHasher hashes with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher. Costs outside bcrypt's range use
// bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Matches(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

var (
	_ PasswordHasher = (*SaltedHasher)(nil)
	_ PasswordHasher = (*BcryptHasher)(nil)
)
