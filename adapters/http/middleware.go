package socialhttp

import (
	"errors"
	"net/http"

	"github.com/open-rails/sociallogin/logger"
	"go.uber.org/zap"
)

// Required validates the caller's access token (Authorization: Bearer, else
// the access_token cookie) and stores its claims in the request context.
func Required(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Claims already attached by the host's own session layer win.
			if _, err := getClaims(r.Context()); err == nil {
				next.ServeHTTP(w, r)
				return
			}
			if v == nil {
				unauthorized(w, "missing_token")
				return
			}
			tok := requestToken(r)
			if tok == "" {
				unauthorized(w, "missing_token")
				return
			}
			cl, err := v.Verify(r.Context(), tok)
			if err != nil {
				unauthorized(w, VerifyErrorCode(err))
				return
			}
			if cl.UserID == "" {
				unauthorized(w, "invalid_token")
				return
			}
			ctx := WithClaims(r.Context(), cl)
			ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.UserID(cl.UserID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin requires the role on claims set by Required.
func RequireAdmin(role string) func(http.Handler) http.Handler {
	if role == "" {
		role = DefaultAdminRole
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cl, err := getClaims(r.Context())
			if err != nil || !cl.HasRole(role) {
				forbidden(w, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger scopes a logger to the request and stores it in the context.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := logger.From(r.Context()).With(logger.Method(r.Method), logger.Path(r.URL.Path))
			next.ServeHTTP(w, r.WithContext(logger.ToContext(r.Context(), l)))
		})
	}
}

// VerifyErrorCode maps a Verifier error to the response error code. Unknown
// errors are logged and reported as invalid_token.
func VerifyErrorCode(err error) string {
	for _, known := range []error{ErrTokenExpired, ErrBadIssuer, ErrBadAudience, ErrInvalidToken} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	logger.L().Warn("token verification failed", zap.Error(err))
	return "invalid_token"
}
