package handlers

import (
	"log/slog"
	"net/http"

	"github.com/johnmikes100/concierge/internal/domain"
)

type submitResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// submit is POST /api/submit. Any failed send operation fails the whole
// request; operations that already went out are not rolled back.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if err := parseJSONBody(r, &sub); err != nil {
		slog.Warn("submit: bad request body", "err", err)
		jsonResponse(w, http.StatusInternalServerError, submitResponse{Error: err.Error()})
		return
	}

	report, err := h.svc.Submit(r.Context(), sub)
	if err != nil {
		slog.Error("submit failed", "err", err, "partial", report.Partial())
		jsonResponse(w, http.StatusInternalServerError, submitResponse{Error: err.Error()})
		return
	}
	jsonResponse(w, http.StatusOK, submitResponse{Success: true})
}
