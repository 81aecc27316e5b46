package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/lucasmoreno/pharmadash-backend/api/responses"
	pkgauth "github.com/lucasmoreno/pharmadash-backend/pkg/auth"
	"github.com/lucasmoreno/pharmadash-backend/pkg/config"
	pkgerrors "github.com/lucasmoreno/pharmadash-backend/pkg/errors"
	"github.com/lucasmoreno/pharmadash-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithClaims(r.Context(), claims)
			if logg != nil {
				ctx = logg.WithUserID(ctx, fmt.Sprintf("%d", claims.UserID))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLaboratory rejects sessions that do not carry the laboratory role.
func RequireLaboratory(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if !claims.IsLaboratory() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "laboratory access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
