package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lucasmoreno/pharmadash-backend/api/middleware"
	"github.com/lucasmoreno/pharmadash-backend/api/responses"
	"github.com/lucasmoreno/pharmadash-backend/api/validators"
	internalorders "github.com/lucasmoreno/pharmadash-backend/internal/orders"
	pkgerrors "github.com/lucasmoreno/pharmadash-backend/pkg/errors"
	"github.com/lucasmoreno/pharmadash-backend/pkg/logger"
	"github.com/lucasmoreno/pharmadash-backend/pkg/pagination"
)

// OrdersList serves the order table with status/search filters and offset
// pagination.
func OrdersList(ordersService internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pageSize, err := validators.ParseQueryInt(r, "pageSize", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := ordersService.List(r.Context(), internalorders.ListInput{
			Status: validators.ParseQueryString(r, "status", ""),
			Search: validators.ParseQueryString(r, "search", ""),
			Params: pagination.Params{Page: page, PageSize: pageSize},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// OrdersUpdate writes delivery fields through to the content API using the
// session's upstream token.
func OrdersUpdate(ordersService internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseIDParam(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input internalorders.UpdateInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contentToken := middleware.ContentTokenFromContext(r.Context())
		if err := ordersService.Update(r.Context(), contentToken, orderID, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"id": orderID, "updated": true})
	}
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive integer").
			WithDetails(map[string]any{"field": name})
	}
	return id, nil
}
