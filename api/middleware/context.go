package middleware

import (
	"context"

	pkgauth "github.com/lucasmoreno/pharmadash-backend/pkg/auth"
)

type contextKey string

const ctxClaims contextKey = "claims"

// WithClaims injects the session claims into the context.
func WithClaims(ctx context.Context, claims *pkgauth.AccessTokenClaims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxClaims, claims)
}

// ClaimsFromContext returns the session claims, or nil outside an
// authenticated request.
func ClaimsFromContext(ctx context.Context) *pkgauth.AccessTokenClaims {
	if ctx == nil {
		return nil
	}
	if claims, ok := ctx.Value(ctxClaims).(*pkgauth.AccessTokenClaims); ok {
		return claims
	}
	return nil
}

// ContentTokenFromContext returns the upstream content-API JWT carried in
// the session, or "" when absent.
func ContentTokenFromContext(ctx context.Context) string {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.ContentToken
	}
	return ""
}
