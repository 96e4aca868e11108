package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

type ActivityMetricsResponse struct {
	Total     int            `json:"total"`
	ByKind    map[string]int `json:"by_kind"`
	Sessions  int            `json:"sessions"`
	OpenCarts int            `json:"open_carts"`
}

// GetActivityMetricsHandler godoc
// @Summary Cart activity since the last daily digest
// @Tags metrics
// @Produce json
// @Success 200 {object} ActivityMetricsResponse
// @Failure 500 {string} string "Internal error"
// @Router /metrics/activity [get]
func GetActivityMetricsHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := recorder.Summary(r.Context())
	if err != nil {
		logger.Error("could not read activity", zap.Error(err))
		http.Error(w, "failed to get metrics", http.StatusInternalServerError)
		return
	}

	resp := ActivityMetricsResponse{
		Total:     summary.Total,
		ByKind:    summary.ByKind,
		Sessions:  len(summary.BySession),
		OpenCarts: cartService.OpenSessions(),
	}
	if resp.ByKind == nil {
		resp.ByKind = map[string]int{}
	}
	respond(w, http.StatusOK, resp)
}
