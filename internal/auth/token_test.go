package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("jwt-test-secret", time.Hour)
	require.NoError(t, err)
	return issuer
}

func TestTokenIssuer_SignVerify(t *testing.T) {
	issuer := newTestIssuer(t)

	token, err := issuer.Sign(Claims{Email: "a@x.com", UserName: "alice", Role: "user"}, 0)
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "alice", claims.UserName)
	assert.Equal(t, "user", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := newTestIssuer(t)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.Sign(Claims{Email: "a@x.com"}, time.Minute)
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := newTestIssuer(t)
	other, err := NewTokenIssuer("another-secret", time.Hour)
	require.NoError(t, err)

	token, err := other.Sign(Claims{Email: "a@x.com"}, 0)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	issuer := newTestIssuer(t)

	claims := Claims{Email: "a@x.com"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("jwt-test-secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer := newTestIssuer(t)

	_, err := issuer.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = issuer.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_SignRequiresEmail(t *testing.T) {
	issuer := newTestIssuer(t)
	_, err := issuer.Sign(Claims{}, 0)
	assert.ErrorIs(t, err, ErrMissingEmail)
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", 0)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestTokenIssuer_AudiencesAreNotInterchangeable(t *testing.T) {
	issuer := newTestIssuer(t)

	verification, err := issuer.SignVerification("a@x.com", 0)
	require.NoError(t, err)
	session, err := issuer.Sign(Claims{Email: "a@x.com"}, 0)
	require.NoError(t, err)

	_, err = issuer.Verify(verification)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = issuer.VerifyVerification(session)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := issuer.VerifyVerification(verification)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, jwt.ClaimStrings{AudienceVerification}, claims.Audience)
}

func TestTokenIssuer_RejectsTokenWithoutAudience(t *testing.T) {
	issuer := newTestIssuer(t)

	claims := Claims{Email: "a@x.com"}
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("jwt-test-secret"))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
