package core

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidRequestToken is returned when an anti-forgery token is missing,
// malformed, expired, spent or issued for another user.
var ErrInvalidRequestToken = errors.New("invalid request token")

const requestTokenAudience = "requesttoken"

// RequestTokens issues and checks the anti-forgery tokens embedded in
// state-changing links. Tokens are HS256 JWTs bound to a user id.
type RequestTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	// spent, when set, records used token ids so each token works once.
	spent EphemeralStore
}

// NewRequestTokens returns a token issuer. An empty secret is replaced with
// random bytes, which only works for a single process.
func NewRequestTokens(secret []byte, ttl time.Duration) (*RequestTokens, error) {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate request token secret: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = DefaultRequestTokenTTL
	}
	return &RequestTokens{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue returns a fresh token for userID.
func (rt *RequestTokens) Issue(userID string) (string, error) {
	now := rt.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Audience:  jwt.ClaimStrings{requestTokenAudience},
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(rt.ttl)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(rt.secret)
}

// Verify checks that token was issued by rt for userID and is still valid.
// With a spent-token store the token is consumed.
func (rt *RequestTokens) Verify(ctx context.Context, userID, token string) error {
	_, err := rt.spend(ctx, userID, token)
	return err
}

// spend verifies token and, with a spent-token store, claims its id. The
// returned id is empty when nothing was claimed.
func (rt *RequestTokens) spend(ctx context.Context, userID, token string) (string, error) {
	if token == "" || userID == "" {
		return "", ErrInvalidRequestToken
	}
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(requestTokenAudience),
		jwt.WithSubject(userID),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(rt.now),
	)
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) { return rt.secret, nil })
	if err != nil {
		return "", ErrInvalidRequestToken
	}
	if rt.spent == nil || claims.ID == "" {
		return "", nil
	}
	ttl := claims.ExpiresAt.Sub(rt.now())
	if ttl <= 0 {
		ttl = time.Second
	}
	claimed, err := ephemClaim(ctx, rt.spent, spentKey(claims.ID), userID, ttl)
	if err != nil {
		return "", fmt.Errorf("spend request token: %w", err)
	}
	if !claimed {
		return "", ErrInvalidRequestToken
	}
	return claims.ID, nil
}

// Release makes a spent token id usable again, for operations that failed
// after the token was consumed. An empty id is a no-op.
func (rt *RequestTokens) Release(ctx context.Context, id string) error {
	if rt.spent == nil || id == "" {
		return nil
	}
	return rt.spent.Del(ctx, spentKey(id))
}

func spentKey(id string) string { return "sociallogin:reqtok:" + id }
