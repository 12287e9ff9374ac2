package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret")

	tok, err := svc.Issue("user-123", "a@x.com")
	require.NoError(t, err)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)

	exp := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(TokenTTL), exp, time.Minute)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService("right-secret").Issue("u1", "a@x.com")
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret").Verify(tok)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	secret := "secret"
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-24 * time.Hour)),
		},
		UserID: "u1",
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokenService(secret).Verify(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("secret")
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}

func TestVerify_RejectsNonHMAC(t *testing.T) {
	t.Parallel()

	// alg=none style tokens must not be accepted even with a valid shape.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService("secret").Verify(signed)
	assert.Error(t, err)
}
