package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"testing"
	"time"

	"github.com/civicworks/volunteerhub/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "https://tenant.auth0.com/"
	testAudience = "https://api.volunteerhub.test"
	testKID      = "test-key-1"
)

type staticKeys struct {
	keys map[string]*rsa.PublicKey
}

func (s *staticKeys) SigningKey(_ context.Context, kid string) (*rsa.PublicKey, error) {
	key, ok := s.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no key for kid %q", kid)
	}
	return key, nil
}

func newTestVerifier(t *testing.T) (*auth.Verifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	provider := &staticKeys{keys: map[string]*rsa.PublicKey{testKID: &key.PublicKey}}
	return auth.NewVerifier(testIssuer, testAudience, provider), key
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims auth.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, &claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func baseClaims() auth.Claims {
	now := time.Now()
	return auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "auth0|abc123",
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestValidate(t *testing.T) {
	verifier, key := newTestVerifier(t)

	t.Run("accepts a well formed token", func(t *testing.T) {
		claims := baseClaims()
		claims.Email = "vol@example.com"
		claims.Permissions = []string{"events:write"}

		got, err := verifier.Validate(context.Background(), signToken(t, key, testKID, claims))
		assert.NoError(t, err)
		assert.Equal(t, "auth0|abc123", got.Subject)
		assert.Equal(t, "vol@example.com", got.Email)
		assert.True(t, got.HasPermission("events:write"))
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		claims := baseClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

		_, err := verifier.Validate(context.Background(), signToken(t, key, testKID, claims))
		assert.Error(t, err)
	})

	t.Run("rejects a wrong audience", func(t *testing.T) {
		claims := baseClaims()
		claims.Audience = jwt.ClaimStrings{"https://other.api"}

		_, err := verifier.Validate(context.Background(), signToken(t, key, testKID, claims))
		assert.Error(t, err)
	})

	t.Run("rejects a wrong issuer", func(t *testing.T) {
		claims := baseClaims()
		claims.Issuer = "https://imposter.auth0.com/"

		_, err := verifier.Validate(context.Background(), signToken(t, key, testKID, claims))
		assert.Error(t, err)
	})

	t.Run("rejects an unknown key ID", func(t *testing.T) {
		_, err := verifier.Validate(context.Background(), signToken(t, key, "rotated-away", baseClaims()))
		assert.Error(t, err)
	})

	t.Run("rejects a token missing the key ID", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, baseClaims())
		signed, err := token.SignedString(key)
		require.NoError(t, err)

		_, err = verifier.Validate(context.Background(), signed)
		assert.Error(t, err)
	})

	t.Run("rejects an HMAC signed token", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, baseClaims())
		token.Header["kid"] = testKID
		signed, err := token.SignedString([]byte("shared-secret"))
		require.NoError(t, err)

		_, err = verifier.Validate(context.Background(), signed)
		assert.Error(t, err)
	})

	t.Run("rejects tampered claims", func(t *testing.T) {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)

		_, err = verifier.Validate(context.Background(), signToken(t, otherKey, testKID, baseClaims()))
		assert.Error(t, err)
	})
}

func TestPermissionSet(t *testing.T) {
	t.Run("uses the permissions claim", func(t *testing.T) {
		claims := &auth.Claims{Permissions: []string{"reports:read", "events:write"}}
		set := claims.PermissionSet()
		assert.Len(t, set, 2)
		assert.Contains(t, set, "reports:read")
	})

	t.Run("falls back to scope", func(t *testing.T) {
		claims := &auth.Claims{Scope: "openid reports:read"}
		assert.True(t, claims.HasPermission("reports:read"))
		assert.False(t, claims.HasPermission("events:write"))
	})

	t.Run("permissions claim wins over scope", func(t *testing.T) {
		claims := &auth.Claims{Scope: "reports:read", Permissions: []string{"events:write"}}
		assert.False(t, claims.HasPermission("reports:read"))
		assert.True(t, claims.HasPermission("events:write"))
	})
}
