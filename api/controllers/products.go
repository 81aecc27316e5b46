package controllers

import (
	"net/http"

	"github.com/lucasmoreno/pharmadash-backend/api/middleware"
	"github.com/lucasmoreno/pharmadash-backend/api/responses"
	"github.com/lucasmoreno/pharmadash-backend/api/validators"
	internalproducts "github.com/lucasmoreno/pharmadash-backend/internal/products"
	"github.com/lucasmoreno/pharmadash-backend/pkg/logger"
)

// ProductsUpdateAvailability toggles a product's active flag or rewrites its
// stock through the content API.
func ProductsUpdateAvailability(productsService internalproducts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := parseIDParam(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input internalproducts.AvailabilityInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contentToken := middleware.ContentTokenFromContext(r.Context())
		if err := productsService.UpdateAvailability(r.Context(), contentToken, productID, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": productID, "updated": true})
	}
}
