package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 48 * time.Hour

// Token audiences. A token is only accepted for the purpose it was signed for.
const (
	AudienceSession      = "session"
	AudienceVerification = "email-verification"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingEmail = errors.New("token claims require an email")
)

// Claims is the identity carried by a session or verification token.
type Claims struct {
	Email    string `json:"email"`
	UserName string `json:"username,omitempty"`
	URLImg   string `json:"url,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens.
type TokenIssuer struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, defaultTTL time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTL
	}
	return &TokenIssuer{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}, nil
}

// Sign issues a session token for claims with an expiration ttl from now.
// A non-positive ttl uses the issuer default.
func (i *TokenIssuer) Sign(claims Claims, ttl time.Duration) (string, error) {
	return i.sign(claims, AudienceSession, ttl)
}

// SignVerification issues an email verification token for email.
func (i *TokenIssuer) SignVerification(email string, ttl time.Duration) (string, error) {
	return i.sign(Claims{Email: email}, AudienceVerification, ttl)
}

// Verify parses a session token and returns its claims, or ErrInvalidToken.
func (i *TokenIssuer) Verify(token string) (*Claims, error) {
	return i.parse(token, AudienceSession)
}

// VerifyVerification parses an email verification token.
func (i *TokenIssuer) VerifyVerification(token string) (*Claims, error) {
	return i.parse(token, AudienceVerification)
}

func (i *TokenIssuer) sign(claims Claims, audience string, ttl time.Duration) (string, error) {
	if claims.Email == "" {
		return "", ErrMissingEmail
	}
	if ttl <= 0 {
		ttl = i.defaultTTL
	}

	now := i.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.Email,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (i *TokenIssuer) parse(token, audience string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(i.now),
	)

	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
