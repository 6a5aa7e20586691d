// internal/handler/report.go
package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/civicworks/volunteerhub/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func writeCSV(w http.ResponseWriter, name string, data []byte) {
	filename := fmt.Sprintf("%s_%s.csv", name, time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// VolunteerHistoryCSV exports recent history entries. ?days= bounds the
// window, defaulting to a year.
func (h *ReportHandler) VolunteerHistoryCSV(w http.ResponseWriter, r *http.Request) {
	days := 365
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid days")
			return
		}
		days = parsed
	}

	data, err := h.service.VolunteerHistoryCSV(r.Context(), days)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeCSV(w, "volunteer_history", data)
}

func (h *ReportHandler) EventsCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.EventsCSV(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeCSV(w, "events", data)
}

func (h *ReportHandler) MatchesCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.MatchesCSV(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeCSV(w, "matches", data)
}
