// Package testing provides a throwaway RS256 token issuer with a JWKS
// endpoint, for exercising the JWKS verifier and the mounted handlers.
package testing

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

const (
	DefaultAudience = "sociallogin"
	testKeyID       = "test-key-1"
)

// TestIssuer signs access tokens and serves its public key at
// /.well-known/jwks.json. Close it when done.
type TestIssuer struct {
	srv      *httptest.Server
	key      *rsa.PrivateKey
	Audience string
}

func NewTestIssuer() *TestIssuer {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	pub, err := jwk.FromRaw(key.Public())
	if err != nil {
		panic(err)
	}
	_ = pub.Set(jwk.KeyIDKey, testKeyID)
	_ = pub.Set(jwk.AlgorithmKey, jwa.RS256)
	_ = pub.Set(jwk.KeyUsageKey, "sig")
	set := jwk.NewSet()
	_ = set.AddKey(pub)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/jwks.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(set)
	})
	return &TestIssuer{srv: httptest.NewServer(mux), key: key, Audience: DefaultAudience}
}

func (i *TestIssuer) URL() string     { return i.srv.URL }
func (i *TestIssuer) Issuer() string  { return i.srv.URL }
func (i *TestIssuer) JWKSURL() string { return i.srv.URL + "/.well-known/jwks.json" }
func (i *TestIssuer) Close()          { i.srv.Close() }

// CreateToken returns a one-hour token for userID with the given roles.
func (i *TestIssuer) CreateToken(userID string, roles ...string) string {
	return i.CreateTokenWithClaims(map[string]any{"sub": userID, "roles": roles})
}

// CreateExpiredToken returns a token that expired an hour ago.
func (i *TestIssuer) CreateExpiredToken(userID string) string {
	now := time.Now()
	return i.CreateTokenWithClaims(map[string]any{
		"sub": userID,
		"iat": now.Add(-2 * time.Hour).Unix(),
		"exp": now.Add(-time.Hour).Unix(),
	})
}

// CreateTokenWithClaims signs claims, filling iss, aud, iat and exp when absent.
func (i *TestIssuer) CreateTokenWithClaims(claims map[string]any) string {
	now := time.Now()
	mc := jwt.MapClaims{
		"iss": i.Issuer(),
		"aud": i.Audience,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	for k, v := range claims {
		mc[k] = v
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, mc)
	tok.Header["kid"] = testKeyID
	s, err := tok.SignedString(i.key)
	if err != nil {
		panic(err)
	}
	return s
}
