// internal/auth/token.go
package auth

import (
	"context"
	"crypto/rsa"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// KeyProvider resolves an RSA public key for a token's key ID.
type KeyProvider interface {
	SigningKey(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// Verifier validates bearer tokens issued by the configured Auth0 tenant.
type Verifier struct {
	issuer   string
	audience string
	keys     KeyProvider
}

func NewVerifier(issuer, audience string, keys KeyProvider) *Verifier {
	return &Verifier{
		issuer:   issuer,
		audience: audience,
		keys:     keys,
	}
}

type Claims struct {
	Email       string   `json:"email,omitempty"`
	Scope       string   `json:"scope,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// PermissionSet returns the granted permissions, falling back to the
// space-separated scope claim when the permissions claim is absent.
func (c *Claims) PermissionSet() map[string]struct{} {
	perms := make(map[string]struct{}, len(c.Permissions))
	for _, p := range c.Permissions {
		perms[p] = struct{}{}
	}
	if len(perms) == 0 && c.Scope != "" {
		for _, p := range strings.Fields(c.Scope) {
			perms[p] = struct{}{}
		}
	}
	return perms
}

// HasPermission reports whether the token grants the named permission.
func (c *Claims) HasPermission(permission string) bool {
	_, ok := c.PermissionSet()[permission]
	return ok
}

func (v *Verifier) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token missing key ID")
		}

		return v.keys.SigningKey(ctx, kid)
	},
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithValidMethods([]string{"RS256"}),
	)

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
