package auth

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeBcrypt = "bcrypt"
	SchemeLegacy = "legacy"
)

var (
	ErrEmptyPassword = errors.New("password is empty")
	ErrMissingSecret = errors.New("secret is required")
	ErrUnknownScheme = errors.New("unknown password scheme")
)

// PasswordHasher produces and checks stored password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, digest string) bool
}

// NewPasswordHasher returns the hasher for the configured scheme.
func NewPasswordHasher(scheme, secret string) (PasswordHasher, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemeBcrypt:
		return NewBcryptHasher(bcrypt.DefaultCost), nil
	case SchemeLegacy:
		return NewLegacyCipher(secret)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}

// BcryptHasher stores salted bcrypt digests.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Compare(plaintext, digest string) bool {
	if plaintext == "" || digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// LegacyCipher reproduces the deterministic digest format of accounts created
// before bcrypt: AES-256-CBC keyed by SHA-256(secret) with a zero IV, hex encoded.
// Equal passwords produce equal digests, so it should only be enabled for
// databases that still hold such digests.
type LegacyCipher struct {
	block cipher.Block
}

func NewLegacyCipher(secret string) (*LegacyCipher, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return &LegacyCipher{block: block}, nil
}

func (c *LegacyCipher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	iv := make([]byte, aes.BlockSize)
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(out, padded)
	return hex.EncodeToString(out), nil
}

func (c *LegacyCipher) Compare(plaintext, digest string) bool {
	if plaintext == "" || digest == "" {
		return false
	}
	computed, err := c.Hash(plaintext)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(strings.ToLower(digest))) == 1
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}
