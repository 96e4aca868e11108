package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/cart-tracker/internal/models"
	repo "github.com/rogerio-castellano/cart-tracker/internal/repo"
)

// GetHistoryHandler godoc
// @Summary Get the action log of the current session
// @Tags history
// @Produce json
// @Param since query string false "Filter actions from this timestamp (RFC3339)"
// @Param until query string false "Filter actions until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} HistorySearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /cart/history [get]
// @Security BearerAuth
func GetHistoryHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionIDFromContext(r.Context())

	filter, ok := parseHistoryFilter(w, r)
	if !ok {
		return
	}

	var limit, offset *int
	var err error

	if limit, err = parseIntPtr(r.URL.Query().Get("limit")); err != nil {
		http.Error(w, "invalid limit format", http.StatusBadRequest)
		return
	}
	if limit != nil && *limit <= 0 {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}

	if offset, err = parseIntPtr(r.URL.Query().Get("offset")); err != nil {
		http.Error(w, "invalid offset format", http.StatusBadRequest)
		return
	}
	if offset != nil && *offset < 0 {
		http.Error(w, "offset must be zero or positive", http.StatusBadRequest)
		return
	}

	filter.Limit = limit
	filter.Offset = offset

	entries, total, err := historyRepo.GetBySession(sessionID, filter)
	if err != nil {
		logger.Error("could not retrieve history", zap.String("session_id", sessionID), zap.Error(err))
		http.Error(w, "could not retrieve history", http.StatusInternalServerError)
		return
	}

	response := HistorySearchResult{
		Data: make([]ActionLogResponse, len(entries)),
		Meta: Meta{TotalCount: total},
	}
	for i, e := range entries {
		response.Data[i] = ActionLogResponse{
			ID:        e.ID,
			Kind:      e.Kind,
			ProductID: e.ProductID,
			Quantity:  e.Quantity,
			Total:     e.Total,
			CreatedAt: e.CreatedAt,
		}
	}
	respond(w, http.StatusOK, response)
}

// ExportHistoryHandler godoc
// @Summary Export the action log of the current session
// @Tags history
// @Produce text/csv, application/json
// @Param format query string true "Export format (csv or json)"
// @Param since query string false "Filter from timestamp (RFC3339)"
// @Param until query string false "Filter until timestamp (RFC3339)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Failure 500 {string} string "Internal error"
// @Router /cart/history/export [get]
// @Security BearerAuth
func ExportHistoryHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := SessionIDFromContext(r.Context())

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	filter, ok := parseHistoryFilter(w, r)
	if !ok {
		return
	}

	entries, err := allHistory(sessionID, filter)
	if err != nil {
		logger.Error("could not retrieve history", zap.String("session_id", sessionID), zap.Error(err))
		http.Error(w, "could not retrieve history", http.StatusInternalServerError)
		return
	}

	switch format {
	case "json":
		headers := http.Header{"Content-Disposition": []string{`attachment; filename="history.json"`}}
		if err := writeJSON(w, http.StatusOK, entries, headers); err != nil {
			logger.Error("failed to write history export", zap.Error(err))
		}

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="history.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "session_id", "kind", "product_id", "quantity", "total", "created_at"})
		for _, e := range entries {
			_ = csvWriter.Write([]string{
				strconv.Itoa(e.ID),
				e.SessionID,
				e.Kind,
				strconv.Itoa(e.ProductID),
				strconv.Itoa(e.Quantity),
				strconv.FormatFloat(e.Total, 'f', 2, 64),
				e.CreatedAt,
			})
		}
		csvWriter.Flush()
		if err := csvWriter.Error(); err != nil {
			logger.Error("failed to write history export", zap.Error(err))
		}
	}
}

// allHistory pages through the history of a session, MaxLimit entries at a time.
func allHistory(sessionID string, f repo.ActionFilter) ([]models.ActionLog, error) {
	entries := []models.ActionLog{}
	for {
		offset, limit := len(entries), repo.MaxLimit
		f.Offset, f.Limit = &offset, &limit

		page, total, err := historyRepo.GetBySession(sessionID, f)
		if err != nil {
			return nil, err
		}
		entries = append(entries, page...)
		if len(page) == 0 || len(entries) >= total {
			return entries, nil
		}
	}
}

func parseHistoryFilter(w http.ResponseWriter, r *http.Request) (repo.ActionFilter, bool) {
	var f repo.ActionFilter
	var err error

	if f.Since, err = parseTimePtr(r.URL.Query().Get("since")); err != nil {
		http.Error(w, "invalid since date format", http.StatusBadRequest)
		return f, false
	}
	if f.Until, err = parseTimePtr(r.URL.Query().Get("until")); err != nil {
		http.Error(w, "invalid until date format", http.StatusBadRequest)
		return f, false
	}
	return f, true
}
