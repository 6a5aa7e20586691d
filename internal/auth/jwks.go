// internal/auth/jwks.go
package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/civicworks/volunteerhub/internal/cache"
)

// JWKSProvider fetches RSA signing keys from an Auth0 tenant's JWKS
// endpoint. Parsed keys are cached so every request does not round-trip
// to the identity provider.
type JWKSProvider struct {
	jwksURL string
	client  *http.Client
	cache   *cache.InMemoryCache
}

func NewJWKSProvider(domain string, keyCache *cache.InMemoryCache) *JWKSProvider {
	return &JWKSProvider{
		jwksURL: fmt.Sprintf("https://%s/.well-known/jwks.json", domain),
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   keyCache,
	}
}

type jwksDocument struct {
	Keys []jwksKey `json:"keys"`
}

type jwksKey struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (p *JWKSProvider) SigningKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if p.cache != nil {
		if cached, found := p.cache.Get(ctx, "jwks:"+kid); found {
			if key, ok := cached.(*rsa.PublicKey); ok {
				return key, nil
			}
		}
	}

	doc, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}

	for _, k := range doc.Keys {
		if k.Kid != kid || k.Kty != "RSA" {
			continue
		}

		key, err := parseRSAKey(k)
		if err != nil {
			return nil, fmt.Errorf("parsing JWKS key %s: %w", kid, err)
		}

		if p.cache != nil {
			p.cache.Set(ctx, "jwks:"+kid, key)
		}
		return key, nil
	}

	return nil, fmt.Errorf("signing key %s not found in JWKS", kid)
}

func (p *JWKSProvider) fetch(ctx context.Context) (*jwksDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building JWKS request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected JWKS status code: %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding JWKS: %w", err)
	}

	return &doc, nil
}

func parseRSAKey(k jwksKey) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("decoding modulus: %w", err)
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("decoding exponent: %w", err)
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
