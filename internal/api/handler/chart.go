package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/solhaven/astrocade/internal/api/middleware"
	"github.com/solhaven/astrocade/internal/api/request"
	"github.com/solhaven/astrocade/internal/api/response"
	"github.com/solhaven/astrocade/internal/services/chart"
)

// ChartHandler handles natal chart computation
type ChartHandler struct {
	charts *chart.Service
	logger *slog.Logger
}

// NewChartHandler creates a new chart handler
func NewChartHandler(charts *chart.Service, logger *slog.Logger) *ChartHandler {
	return &ChartHandler{
		charts: charts,
		logger: logger,
	}
}

// ComputeChart handles POST /astro
func (h *ChartHandler) ComputeChart(w http.ResponseWriter, r *http.Request) {
	var req request.ChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	rec := middleware.MustGetPlayer(r.Context())

	result, err := h.charts.Compute(r.Context(), req.BirthDate, req.BirthTime, req.BirthLocation)
	if err != nil {
		// Upstream detail stays in the log; the client gets the mapped code.
		h.logger.Warn("chart computation failed",
			slog.String("player_id", string(rec.ID)),
			slog.Any("error", err))
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChartResponse{Result: result})
}
