package socialhttp

import (
	"context"
	"errors"
	"slices"
	"strings"
)

// Claims is the caller identity attached by Required.
type Claims struct {
	UserID string
	Email  string
	Roles  []string
}

func (c Claims) HasRole(role string) bool {
	return slices.ContainsFunc(c.Roles, func(r string) bool { return strings.EqualFold(r, role) })
}

type claimsCtxKey struct{}

// WithClaims attaches claims to ctx. Hosts with their own session layer can
// use it instead of Required.
func WithClaims(ctx context.Context, cl Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, cl)
}

func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	cl, ok := ctx.Value(claimsCtxKey{}).(Claims)
	return cl, ok
}

func getClaims(ctx context.Context) (Claims, error) {
	if cl, ok := ClaimsFromContext(ctx); ok && cl.UserID != "" {
		return cl, nil
	}
	return Claims{}, errors.New("unauthenticated")
}

// claimsFromMap reads the claims this package understands from a decoded
// JWT body. roles may be a list or a space separated string.
func claimsFromMap(m map[string]any) Claims {
	var cl Claims
	cl.UserID, _ = m["sub"].(string)
	cl.Email, _ = m["email"].(string)
	switch rs := m["roles"].(type) {
	case []any:
		for _, v := range rs {
			if s, ok := v.(string); ok {
				cl.Roles = append(cl.Roles, s)
			}
		}
	case []string:
		cl.Roles = append(cl.Roles, rs...)
	case string:
		cl.Roles = strings.Fields(rs)
	}
	return cl
}
