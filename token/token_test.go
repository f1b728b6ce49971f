package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", 0)

	tokenString, err := codec.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	userID, err := codec.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestCodecRejectsBadTokens(t *testing.T) {
	codec := NewCodec("test-secret", 0)

	tokenString, err := codec.Issue(7)
	require.NoError(t, err)

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewCodec("another-secret", 0)
		_, err := other.Verify(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("truncated token", func(t *testing.T) {
		_, err := codec.Verify(tokenString[:len(tokenString)-5])
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := codec.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := codec.Verify("")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user claim", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iat": time.Now().Unix(),
		})
		signed, err := tok.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = codec.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestCodecExpiry(t *testing.T) {
	codec := NewCodec("test-secret", 1)

	t.Run("fresh token passes", func(t *testing.T) {
		tokenString, err := codec.Issue(9)
		require.NoError(t, err)

		userID, err := codec.Verify(tokenString)
		require.NoError(t, err)
		assert.Equal(t, uint(9), userID)
	})

	t.Run("expired token fails", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"userId": 9,
			"iat":    time.Now().Add(-2 * time.Hour).Unix(),
			"exp":    time.Now().Add(-time.Hour).Unix(),
		})
		signed, err := tok.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = codec.Verify(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("zero expiry issues non-expiring tokens", func(t *testing.T) {
		forever := NewCodec("test-secret", 0)
		tokenString, err := forever.Issue(3)
		require.NoError(t, err)

		parsed, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.NotContains(t, claims, "exp")
	})
}
