package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	pkgauth "github.com/lucasmoreno/pharmadash-backend/pkg/auth"
	"github.com/lucasmoreno/pharmadash-backend/pkg/config"
	"github.com/lucasmoreno/pharmadash-backend/pkg/logger"
)

func middlewareTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

func middlewareTestJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Issuer: "pharmadash", ExpirationMinutes: 10}
}

func TestAuthRejectsMissingAndMalformedTokens(t *testing.T) {
	handler := Auth(middlewareTestJWT(), middlewareTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without credentials")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthSeedsClaimsIntoContext(t *testing.T) {
	cfg := middlewareTestJWT()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID:       42,
		Username:     "labo",
		RoleID:       pkgauth.RoleIDLaboratory,
		ContentToken: "upstream-jwt",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var gotClaims *pkgauth.AccessTokenClaims
	handler := Auth(cfg, middlewareTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = ClaimsFromContext(r.Context())
		if got := ContentTokenFromContext(r.Context()); got != "upstream-jwt" {
			t.Fatalf("content token not propagated, got %q", got)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected handler to run, got %d", rec.Code)
	}
	if gotClaims == nil || gotClaims.UserID != 42 {
		t.Fatalf("claims missing from context: %+v", gotClaims)
	}
}

func TestRequireLaboratoryBlocksOtherRoles(t *testing.T) {
	handler := RequireLaboratory(middlewareTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// No claims at all.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without claims, got %d", rec.Code)
	}

	// Authenticated but with the wrong role.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), &pkgauth.AccessTokenClaims{UserID: 1, RoleID: 1}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-laboratory role, got %d", rec.Code)
	}

	// Laboratory role passes.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), &pkgauth.AccessTokenClaims{UserID: 1, RoleID: pkgauth.RoleIDLaboratory}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected laboratory session to pass, got %d", rec.Code)
	}
}
