package socialhttp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
)

// Verifier validates a caller's access token and returns its claims.
// Errors are short snake_case codes suitable for the response body.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// Verification failures. Their messages are the response error codes.
var (
	ErrInvalidToken = errors.New("invalid_token")
	ErrTokenExpired = errors.New("token_expired")
	ErrBadIssuer    = errors.New("bad_issuer")
	ErrBadAudience  = errors.New("bad_audience")
)

// AcceptConfig describes which tokens a verifier accepts. Empty Issuer or
// Audience skips that check.
type AcceptConfig struct {
	Issuer   string
	Audience string
	Skew     time.Duration
}

func (c AcceptConfig) skew() time.Duration {
	if c.Skew <= 0 {
		return 30 * time.Second
	}
	return c.Skew
}

// HMACVerifier accepts HS256 tokens signed with a shared secret, the setup
// most hosts with a monolithic session service use.
type HMACVerifier struct {
	secret []byte
	accept AcceptConfig
}

func NewHMACVerifier(secret []byte, accept AcceptConfig) *HMACVerifier {
	return &HMACVerifier{secret: secret, accept: accept}
}

func (v *HMACVerifier) Verify(_ context.Context, token string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.accept.skew()),
	}
	if v.accept.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.accept.Issuer))
	}
	if v.accept.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.accept.Audience))
	}
	claims := jwt.MapClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(*jwt.Token) (any, error) { return v.secret, nil })
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return Claims{}, ErrBadIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return Claims{}, ErrBadAudience
	default:
		return Claims{}, ErrInvalidToken
	}
	return claimsFromMap(claims), nil
}

// JWKSVerifier accepts asymmetric tokens from one issuer whose keys are
// published at a JWKS URL. Keys are cached and refreshed in the background.
type JWKSVerifier struct {
	url    string
	cache  *jwk.Cache
	accept AcceptConfig
}

// NewJWKSVerifier registers jwksURL with a key cache and fetches it once so
// misconfiguration surfaces at startup. ctx bounds the cache's refresh loop.
func NewJWKSVerifier(ctx context.Context, jwksURL string, accept AcceptConfig) (*JWKSVerifier, error) {
	c := jwk.NewCache(ctx)
	if err := c.Register(jwksURL, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
		return nil, fmt.Errorf("register jwks %s: %w", jwksURL, err)
	}
	if _, err := c.Refresh(ctx, jwksURL); err != nil {
		return nil, fmt.Errorf("fetch jwks %s: %w", jwksURL, err)
	}
	return &JWKSVerifier{url: jwksURL, cache: c, accept: accept}, nil
}

func (v *JWKSVerifier) Verify(ctx context.Context, token string) (Claims, error) {
	set, err := v.cache.Get(ctx, v.url)
	if err != nil {
		return Claims{}, fmt.Errorf("jwks unavailable: %w", err)
	}
	opts := []jwxjwt.ParseOption{
		jwxjwt.WithKeySet(set),
		jwxjwt.WithValidate(true),
		jwxjwt.WithAcceptableSkew(v.accept.skew()),
		jwxjwt.WithRequiredClaim(jwxjwt.ExpirationKey),
	}
	if v.accept.Issuer != "" {
		opts = append(opts, jwxjwt.WithIssuer(v.accept.Issuer))
	}
	if v.accept.Audience != "" {
		opts = append(opts, jwxjwt.WithAudience(v.accept.Audience))
	}
	tok, err := jwxjwt.Parse([]byte(strings.TrimSpace(token)), opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwxjwt.ErrTokenExpired()):
			return Claims{}, ErrTokenExpired
		case errors.Is(err, jwxjwt.ErrInvalidIssuer()):
			return Claims{}, ErrBadIssuer
		case errors.Is(err, jwxjwt.ErrInvalidAudience()):
			return Claims{}, ErrBadAudience
		}
		return Claims{}, ErrInvalidToken
	}
	m, err := tok.AsMap(ctx)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	return claimsFromMap(m), nil
}
