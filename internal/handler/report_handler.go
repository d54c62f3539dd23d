package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tasklift/backend/internal/metrics"
	"github.com/tasklift/backend/internal/service"
)

// ReportHandler handles ROI report submissions.
type ReportHandler struct {
	reportService     service.ReportService
	trustedProxyCount int
}

// NewReportHandler creates a ReportHandler with the given service.
func NewReportHandler(reportService service.ReportService, trustedProxyCount int) *ReportHandler {
	return &ReportHandler{reportService: reportService, trustedProxyCount: trustedProxyCount}
}

// submitRequest is the expected JSON body for POST /api/report.
// results is accepted for wire compatibility with older site builds but is
// always discarded: the server recomputes everything from inputs.
type submitRequest struct {
	Email          string          `json:"email"`
	TurnstileToken string          `json:"turnstileToken"`
	Inputs         map[string]any  `json:"inputs"`
	Results        json.RawMessage `json:"results"`
}

// Submit handles POST /api/report.
func (h *ReportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ReportsRejected.WithLabelValues("malformed").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	id, err := h.reportService.Submit(r.Context(), service.SubmitRequest{
		Email:          req.Email,
		TurnstileToken: req.TurnstileToken,
		RawInputs:      req.Inputs,
		RemoteIP:       ClientIP(r, h.trustedProxyCount),
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			metrics.ReportsRejected.WithLabelValues("validation").Inc()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error":   "validation_failed",
				"details": verr.Details(),
			})
		case errors.Is(err, service.ErrVerificationFailed):
			metrics.ReportsRejected.WithLabelValues("verification").Inc()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "verification_failed"})
		default:
			metrics.ReportsRejected.WithLabelValues("transport").Inc()
			slog.Error("report submission failed", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "submit_failed"})
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success":   true,
		"messageId": id,
	})
}
