package controllers

import (
	"net/http"

	"github.com/lucasmoreno/pharmadash-backend/api/responses"
	"github.com/lucasmoreno/pharmadash-backend/api/validators"
	"github.com/lucasmoreno/pharmadash-backend/internal/dashboard"
	"github.com/lucasmoreno/pharmadash-backend/internal/reporthistory"
	"github.com/lucasmoreno/pharmadash-backend/pkg/enums"
	"github.com/lucasmoreno/pharmadash-backend/pkg/logger"
)

// DashboardMetrics serves the sales report for the requested range. Unknown
// range keys fall back to the all-time window rather than erroring.
func DashboardMetrics(dashboardService dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rangeKey := enums.NormalizeRangeKey(validators.ParseQueryString(r, "range", ""))

		dto, err := dashboardService.Metrics(r.Context(), rangeKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// DashboardHistory serves the report snapshots captured by the cron worker,
// newest first, for the period-over-period trend view.
func DashboardHistory(historyService reporthistory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", reporthistory.DefaultHistoryLimit, 1, 365)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := historyService.History(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// DashboardCatalog serves the stock-management projection over the full
// catalog.
func DashboardCatalog(dashboardService dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projection, err := dashboardService.Catalog(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, projection)
	}
}
