package core

import "context"

type auditCtxKey string

const auditCtxKeyRequestMeta auditCtxKey = "sociallogin.request_meta"

type requestMeta struct {
	ip        string
	userAgent string
}

// WithRequestMeta annotates ctx so settings events record the caller.
func WithRequestMeta(ctx context.Context, ip, userAgent string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, auditCtxKeyRequestMeta, requestMeta{ip: ip, userAgent: userAgent})
}

func requestMetaFromContext(ctx context.Context) (requestMeta, bool) {
	if ctx == nil {
		return requestMeta{}, false
	}
	m, ok := ctx.Value(auditCtxKeyRequestMeta).(requestMeta)
	return m, ok
}
