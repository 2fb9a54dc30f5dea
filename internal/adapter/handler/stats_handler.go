package handler

import (
	"net/http"
	"strconv"

	"github.com/dangtrinh58/goshop/internal/core/service"
)

type StatsHandler struct {
	stats *service.StatsService
}

func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) TotalRevenue(w http.ResponseWriter, r *http.Request) {
	total, err := h.stats.TotalRevenue(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"totalRevenue": total})
}

func (h *StatsHandler) MonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.stats.MonthlyRevenue(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (h *StatsHandler) TopSellingProducts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeValidationError(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	products, err := h.stats.TopSellingProducts(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}
