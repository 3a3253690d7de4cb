package handler

import (
	"net/http"

	"github.com/murithi/rentledger/internal/service"
	"github.com/murithi/rentledger/pkg/response"

	"github.com/gorilla/mux"
)

type StatsHandler struct {
	stats   *service.StatsService
	reports *service.ReportService
}

func NewStatsHandler(stats *service.StatsService, reports *service.ReportService) *StatsHandler {
	return &StatsHandler{
		stats:   stats,
		reports: reports,
	}
}

// Stats handles GET /stats
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.ComputeStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, stats)
}

// Report handles GET /reports/{granularity}
func (h *StatsHandler) Report(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	report, err := h.reports.Summary(r.Context(), vars["granularity"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, report)
}
