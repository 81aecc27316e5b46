package controllers

import (
	"net/http"

	"github.com/lucasmoreno/pharmadash-backend/api/responses"
	"github.com/lucasmoreno/pharmadash-backend/api/validators"
	"github.com/lucasmoreno/pharmadash-backend/internal/auth"
	"github.com/lucasmoreno/pharmadash-backend/pkg/logger"
)

// AuthLogin exchanges content-API credentials for a dashboard session token.
func AuthLogin(authService auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input auth.LoginInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := authService.Login(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}
